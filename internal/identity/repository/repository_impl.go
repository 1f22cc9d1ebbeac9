package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/identity/domain"
	"gorm.io/gorm"
)

type repo struct{}

type sessionRepo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func ProvideSessions() domain.SessionRepository {
	return &sessionRepo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).First(&user, "email = ?", strings.ToLower(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, req domain.ListUsersRequest) ([]*domain.User, error) {
	stmt := db.WithContext(ctx).Model(&domain.User{})
	if req.Role != "" {
		stmt = stmt.Where("role = ?", req.Role)
	}
	if req.Search != "" {
		pattern := "%" + strings.ToLower(req.Search) + "%"
		stmt = stmt.Where("lower(email) LIKE ? OR lower(display_name) LIKE ?", pattern, pattern)
	}
	limit := req.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var users []*domain.User
	if err := stmt.Order("created_at desc, id desc").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) UpdateSuspended(ctx context.Context, db *gorm.DB, id snowflake.ID, suspended bool) error {
	return db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"suspended": suspended, "updated_at": gorm.Expr("CURRENT_TIMESTAMP")}).Error
}

func (r *repo) CountAdmins(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.User{}).Where("role = ?", domain.RoleAdmin).Count(&count).Error
	return count, err
}

func (s *sessionRepo) Insert(ctx context.Context, db *gorm.DB, session *domain.Session) error {
	return db.WithContext(ctx).Create(session).Error
}

func (s *sessionRepo) FindByTokenHash(ctx context.Context, db *gorm.DB, hash string) (*domain.Session, error) {
	var session domain.Session
	err := db.WithContext(ctx).First(&session, "session_token_hash = ?", hash).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *sessionRepo) Touch(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Model(&domain.Session{}).
		Where("id = ?", id).
		Update("last_seen_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

func (s *sessionRepo) Revoke(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Model(&domain.Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
