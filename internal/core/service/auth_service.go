package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/peoplehub/recognition-system/internal/core/domain"
	"github.com/peoplehub/recognition-system/internal/core/ports"
)

// AuthService implements registration, login and refresh-token rotation.
type AuthService struct {
	users     ports.UserRepository
	tokens    ports.RefreshTokenStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, tokens ports.RefreshTokenStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{users: users, tokens: tokens, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates an EMPLOYEE account. Callers cannot pick a role.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" || in.Email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleEmployee,
		EmployeeID:   in.EmployeeID,
		Practice:     in.Practice,
		Portfolio:    in.Portfolio,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.users.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, *domain.User, error) {
	if username == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh exchanges a refresh token for a new pair, revoking the old one.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	userID, err := s.tokens.Lookup(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in ports.ProfileUpdateInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Practice != "" {
		user.Practice = in.Practice
	}
	if in.Portfolio != "" {
		user.Portfolio = in.Portfolio
	}
	if in.Location != "" {
		user.Location = in.Location
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"email":    user.Email,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	refresh := uuid.NewString()
	if err := s.tokens.Save(ctx, refresh, user.ID); err != nil {
		return nil, err
	}

	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
