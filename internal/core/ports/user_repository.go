package ports

import (
	"context"

	"github.com/peoplehub/recognition-system/internal/core/domain"
)

// ListUsersFilter carries query parameters for the candidate directory.
type ListUsersFilter struct {
	Search       string   // partial match on username or employee_id
	Practice     string   // exact (case-insensitive) practice filter
	Portfolio    string   // exact (case-insensitive) portfolio filter
	Location     string   // exact (case-insensitive) location filter
	ExcludeID    string   // the requesting user, never a candidate for themselves
	ExcludeRoles []string // roles hidden from the directory (admins)
	Page         int      // 1-based
	Limit        int      // max rows per page (capped by the service)
}

// FilterOptions lists the distinct organisational values candidates can be
// filtered by.
type FilterOptions struct {
	Practices  []string `json:"practices"`
	Portfolios []string `json:"portfolios"`
	Locations  []string `json:"locations"`
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	// UpsertByEmail creates or updates a user keyed by email and reports
	// whether a new record was created. Used by the roster import.
	UpsertByEmail(ctx context.Context, u *domain.User) (created bool, err error)
	// List returns a page of users matching filter and the total count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	FilterOptions(ctx context.Context) (*FilterOptions, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}
