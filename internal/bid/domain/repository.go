package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, bid *Bid) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Bid, error)
	FindByProjectAndFreelancer(ctx context.Context, db *gorm.DB, projectID, freelancerID snowflake.ID) (*Bid, error)
	ListByProject(ctx context.Context, db *gorm.DB, projectID snowflake.ID) ([]*Bid, error)
	ListByFreelancer(ctx context.Context, db *gorm.DB, freelancerID snowflake.ID) ([]*Bid, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status) error
	// RejectOpenByProject rejects every non-terminal bid on the project except
	// the winner's, returning the bids that were rejected.
	RejectOpenByProject(ctx context.Context, db *gorm.DB, projectID, exceptFreelancerID snowflake.ID) ([]*Bid, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	ListChangedSince(ctx context.Context, db *gorm.DB, since time.Time, limit int) ([]*Bid, error)
}
