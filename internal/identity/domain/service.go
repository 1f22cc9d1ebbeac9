package domain

import (
	"context"
	"errors"
)

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

type LoginRequest struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginResponse struct {
	User  User
	Token string
}

type AuthenticatedSession struct {
	UserID  int64
	Role    string
	Session Session
	User    User
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (User, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a raw session token to its user, refreshing the
	// session's last-seen timestamp.
	Authenticate(ctx context.Context, token string) (AuthenticatedSession, error)
	GetUser(ctx context.Context, id string) (User, error)
	ListUsers(ctx context.Context, req ListUsersRequest) ([]User, error)
	SetSuspended(ctx context.Context, id string, suspended bool) (User, error)
}

type ListUsersRequest struct {
	Role   string
	Search string
	Limit  int
}

var (
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidPassword    = errors.New("invalid_password")
	ErrInvalidDisplayName = errors.New("invalid_display_name")
	ErrInvalidRole        = errors.New("invalid_role")
	ErrInvalidID          = errors.New("invalid_id")
	ErrUserExists         = errors.New("user_exists")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrUserSuspended      = errors.New("user_suspended")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidSession     = errors.New("invalid_session")
	ErrSessionExpired     = errors.New("session_expired")
	ErrSessionRevoked     = errors.New("session_revoked")
)
