package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, review *Review) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Review, error)
	ListByReviewee(ctx context.Context, db *gorm.DB, revieweeID snowflake.ID, status Status) ([]*Review, error)
	ListByStatus(ctx context.Context, db *gorm.DB, status Status) ([]*Review, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status) error
	// AggregateApproved returns the average rating and count of approved
	// reviews about the user.
	AggregateApproved(ctx context.Context, db *gorm.DB, revieweeID snowflake.ID) (float64, int64, error)
}
