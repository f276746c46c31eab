package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/peoplehub/recognition-system/internal/core/domain"
	"github.com/peoplehub/recognition-system/internal/core/ports"
)

func authFixture() (*stubUserRepo, *stubTokenStore, *AuthService) {
	users := newStubUserRepo()
	tokens := newStubTokenStore()
	svc := NewAuthService(users, tokens, "secret", time.Hour)
	return users, tokens, svc
}

func TestAuthService_Register(t *testing.T) {
	_, _, svc := authFixture()

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleEmployee {
		t.Fatalf("registration must always produce an employee, got %s", user.Role)
	}
	if user.PasswordHash == "hunter22" {
		t.Fatalf("password stored in clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")) != nil {
		t.Fatalf("stored hash does not match the password")
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	_, _, svc := authFixture()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	_, _, svc := authFixture()

	in := ports.RegisterInput{Username: "bob", Email: "bob@example.com", Password: "hunter22"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	_, _, svc := authFixture()

	registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "carol", Email: "carol@example.com", Password: "s3cretpw",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pair, user, err := svc.Login(context.Background(), "carol", "s3cretpw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}
	if pair.RefreshToken == "" {
		t.Fatalf("expected a refresh token")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(pair.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims["sub"] != registered.ID || claims["role"] != domain.RoleEmployee {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	_, _, svc := authFixture()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "dave", Email: "dave@example.com", Password: "goodpass",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	_, _, svc := authFixture()

	if _, _, err := svc.Login(context.Background(), "ghost", "whatever"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Refresh_Rotation(t *testing.T) {
	_, tokens, svc := authFixture()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "erin", Email: "erin@example.com", Password: "s3cretpw",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, _, err := svc.Login(context.Background(), "erin", "s3cretpw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	next, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatalf("refresh token must rotate")
	}
	if _, ok := tokens.tokens[pair.RefreshToken]; ok {
		t.Fatalf("old refresh token must be revoked")
	}

	// The old token cannot be replayed.
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials on replay, got %v", err)
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	_, _, svc := authFixture()

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "fred", Email: "fred@example.com", Password: "s3cretpw", Practice: "Engineering",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), user.ID, ports.ProfileUpdateInput{Location: "Lisbon"})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Location != "Lisbon" {
		t.Fatalf("location not updated: %q", updated.Location)
	}
	if updated.Practice != "Engineering" {
		t.Fatalf("omitted fields must be preserved, got %q", updated.Practice)
	}
}
