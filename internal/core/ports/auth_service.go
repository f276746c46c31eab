package ports

import (
	"context"

	"github.com/peoplehub/recognition-system/internal/core/domain"
)

// RegisterInput carries self-service registration data. Role is always
// forced to EMPLOYEE by the service; callers cannot elevate themselves.
type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	EmployeeID string
	Practice   string
	Portfolio  string
}

// TokenPair is an access token plus the rotating refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// ProfileUpdateInput carries the self-editable profile fields.
type ProfileUpdateInput struct {
	Practice  string
	Portfolio string
	Location  string
}

// AuthService implements registration, login and token refresh.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, *domain.User, error)
	// Refresh exchanges a valid refresh token for a new pair, revoking the
	// old one.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileUpdateInput) (*domain.User, error)
}

// RefreshTokenStore persists refresh tokens with a TTL.
type RefreshTokenStore interface {
	Save(ctx context.Context, token, userID string) error
	// Lookup resolves the user id behind a token, "" when unknown or expired.
	Lookup(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}
