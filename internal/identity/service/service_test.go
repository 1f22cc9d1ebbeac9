package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/config"
	"github.com/gigbridge/gigbridge/internal/identity/domain"
	"github.com/gigbridge/gigbridge/internal/identity/repository"
	"github.com/gigbridge/gigbridge/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db  *gorm.DB
	svc domain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&domain.User{}, &domain.Session{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	svc := New(Params{
		Cfg:      config.Config{SessionTTL: time.Hour},
		DB:       dbConn,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		Sessions: repository.ProvideSessions(),
	})
	return &fixture{db: dbConn, svc: svc}
}

func (f *fixture) register(t *testing.T, email, role string) domain.User {
	t.Helper()
	user, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		Email:       email,
		Password:    "correct horse",
		DisplayName: "Test User",
		Role:        role,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return user
}

func TestRegisterNormalizesEmail(t *testing.T) {
	f := newFixture(t)

	user := f.register(t, "  Client@Example.COM ", domain.RoleClient)
	if user.Email != "client@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "correct horse" {
		t.Fatal("password stored in the clear")
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		Email:       "admin@example.com",
		Password:    "correct horse",
		DisplayName: "Admin",
		Role:        domain.RoleAdmin,
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "client@example.com", domain.RoleClient)

	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		Email:       "CLIENT@example.com",
		Password:    "correct horse",
		DisplayName: "Other",
		Role:        domain.RoleFreelancer,
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestLoginAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "client@example.com", domain.RoleClient)

	resp, err := f.svc.Login(context.Background(), domain.LoginRequest{
		Email:    "client@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a session token")
	}

	session, err := f.svc.Authenticate(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if session.User.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, session.User.ID)
	}
	if session.Role != domain.RoleClient {
		t.Fatalf("expected client role, got %q", session.Role)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.register(t, "client@example.com", domain.RoleClient)

	_, err := f.svc.Login(context.Background(), domain.LoginRequest{
		Email:    "client@example.com",
		Password: "wrong horse",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newFixture(t)
	f.register(t, "client@example.com", domain.RoleClient)

	resp, err := f.svc.Login(context.Background(), domain.LoginRequest{
		Email:    "client@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := f.svc.Logout(context.Background(), resp.Token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	_, err = f.svc.Authenticate(context.Background(), resp.Token)
	if !errors.Is(err, domain.ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}
}

func TestSuspendedUserCannotLoginOrAuthenticate(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "client@example.com", domain.RoleClient)

	resp, err := f.svc.Login(context.Background(), domain.LoginRequest{
		Email:    "client@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := f.svc.SetSuspended(context.Background(), user.ID.String(), true); err != nil {
		t.Fatalf("suspend failed: %v", err)
	}

	// Existing sessions die with the suspension.
	if _, err := f.svc.Authenticate(context.Background(), resp.Token); !errors.Is(err, domain.ErrUserSuspended) {
		t.Fatalf("expected ErrUserSuspended, got %v", err)
	}

	_, err = f.svc.Login(context.Background(), domain.LoginRequest{
		Email:    "client@example.com",
		Password: "correct horse",
	})
	if !errors.Is(err, domain.ErrUserSuspended) {
		t.Fatalf("expected ErrUserSuspended, got %v", err)
	}
}
