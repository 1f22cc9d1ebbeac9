package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Upsert(ctx context.Context, db *gorm.DB, profile *Profile) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*Profile, error)
	UpdateRating(ctx context.Context, db *gorm.DB, userID snowflake.ID, avg float64, count int) error
}
