package domain

import "time"

const (
	RoleEmployee    = "EMPLOYEE"
	RoleCoordinator = "COORDINATOR"
	RoleAdmin       = "ADMIN"
)

// roleHierarchy orders roles by authority level.
var roleHierarchy = map[string]int{
	RoleEmployee:    1,
	RoleCoordinator: 2,
	RoleAdmin:       3,
}

// ValidRole reports whether role is one of the known role constants.
func ValidRole(role string) bool {
	_, ok := roleHierarchy[role]
	return ok
}

// RoleLevel returns the hierarchy level for a role (employee level when unknown).
func RoleLevel(role string) int {
	if lvl, ok := roleHierarchy[role]; ok {
		return lvl
	}
	return 1
}

// CanReview reports whether a role may act on nominations (approve/reject/undo).
func CanReview(role string) bool {
	return role == RoleCoordinator || role == RoleAdmin
}

// User models an authenticated actor in the recognition programme.
// Practice and Portfolio carry the organisational department and role title.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	EmployeeID   string    `json:"employee_id,omitempty"`
	Practice     string    `json:"practice,omitempty"`
	Portfolio    string    `json:"portfolio,omitempty"`
	Location     string    `json:"location,omitempty"`
	Country      string    `json:"country,omitempty"`
	ContractType string    `json:"contract_type,omitempty"`
	LineManager  string    `json:"line_manager,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayName returns "First Last" when present, falling back to the username.
func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}
