package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	List(ctx context.Context, db *gorm.DB, req ListUsersRequest) ([]*User, error)
	UpdateSuspended(ctx context.Context, db *gorm.DB, id snowflake.ID, suspended bool) error
	CountAdmins(ctx context.Context, db *gorm.DB) (int64, error)
}

type SessionRepository interface {
	Insert(ctx context.Context, db *gorm.DB, session *Session) error
	FindByTokenHash(ctx context.Context, db *gorm.DB, hash string) (*Session, error)
	Touch(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	Revoke(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
