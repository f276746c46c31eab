package handler

import "github.com/peoplehub/recognition-system/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Username   string `json:"username"    validate:"required,min=3"`
	Email      string `json:"email"       validate:"required,email"`
	Password   string `json:"password"    validate:"required,min=8"`
	EmployeeID string `json:"employee_id"`
	Practice   string `json:"practice"`
	Portfolio  string `json:"portfolio"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type updateProfileRequest struct {
	Practice  string `json:"practice"`
	Portfolio string `json:"portfolio"`
	Location  string `json:"location"`
}

type authResponse struct {
	AccessToken  string       `json:"access_token,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	User         *domain.User `json:"user,omitempty"`
}
