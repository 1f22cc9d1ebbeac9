package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/config"
	"github.com/gigbridge/gigbridge/internal/identity/domain"
	"github.com/gigbridge/gigbridge/internal/identity/password"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg      config.Config
	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Sessions domain.SessionRepository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	sessions   domain.SessionRepository
	sessionTTL time.Duration
}

func New(p Params) domain.Service {
	ttl := p.Cfg.SessionTTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("identity.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		sessions:   p.Sessions,
		sessionTTL: ttl,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, domain.ErrInvalidEmail
	}
	if len(req.Password) < 8 {
		return domain.User{}, domain.ErrInvalidPassword
	}
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return domain.User{}, domain.ErrInvalidDisplayName
	}
	role := strings.TrimSpace(req.Role)
	// Admin accounts are provisioned by seed or by an existing admin, never
	// through open registration.
	if role != domain.RoleClient && role != domain.RoleFreelancer {
		return domain.User{}, domain.ErrInvalidRole
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.User{}, err
	}
	if existing != nil {
		return domain.User{}, domain.ErrUserExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  name,
		Role:         role,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		return domain.User{}, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("role", role))
	return user, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}
	if user.Suspended {
		return domain.LoginResponse{}, domain.ErrUserSuspended
	}

	token := uuid.NewString()
	now := time.Now().UTC()
	session := domain.Session{
		ID:               s.genID.Generate(),
		UserID:           user.ID,
		SessionTokenHash: hashToken(token),
		UserAgent:        req.UserAgent,
		IPAddress:        req.IPAddress,
		ExpiresAt:        now.Add(s.sessionTTL),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	if err := s.sessions.Insert(ctx, s.db, &session); err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{User: *user, Token: token}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	session, err := s.sessions.FindByTokenHash(ctx, s.db, hashToken(token))
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	return s.sessions.Revoke(ctx, s.db, session.ID)
}

func (s *Service) Authenticate(ctx context.Context, token string) (domain.AuthenticatedSession, error) {
	if strings.TrimSpace(token) == "" {
		return domain.AuthenticatedSession{}, domain.ErrInvalidSession
	}

	session, err := s.sessions.FindByTokenHash(ctx, s.db, hashToken(token))
	if err != nil {
		return domain.AuthenticatedSession{}, err
	}
	if session == nil {
		return domain.AuthenticatedSession{}, domain.ErrInvalidSession
	}
	if session.RevokedAt != nil {
		return domain.AuthenticatedSession{}, domain.ErrSessionRevoked
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		return domain.AuthenticatedSession{}, domain.ErrSessionExpired
	}

	user, err := s.repo.FindByID(ctx, s.db, session.UserID)
	if err != nil {
		return domain.AuthenticatedSession{}, err
	}
	if user == nil {
		return domain.AuthenticatedSession{}, domain.ErrInvalidSession
	}
	if user.Suspended {
		return domain.AuthenticatedSession{}, domain.ErrUserSuspended
	}

	if err := s.sessions.Touch(ctx, s.db, session.ID); err != nil {
		s.log.Warn("failed to touch session", zap.Error(err))
	}

	return domain.AuthenticatedSession{
		UserID:  int64(user.ID),
		Role:    user.Role,
		Session: *session,
		User:    *user,
	}, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (domain.User, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.User{}, domain.ErrInvalidID
	}
	user, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrUserNotFound
	}
	return *user, nil
}

func (s *Service) ListUsers(ctx context.Context, req domain.ListUsersRequest) ([]domain.User, error) {
	items, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(items))
	for _, item := range items {
		users = append(users, *item)
	}
	return users, nil
}

func (s *Service) SetSuspended(ctx context.Context, id string, suspended bool) (domain.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.repo.UpdateSuspended(ctx, s.db, user.ID, suspended); err != nil {
		return domain.User{}, err
	}
	user.Suspended = suspended
	return user, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
