package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ShortlistRepository interface {
	// Upsert inserts the shortlist entry or, on conflict of the unique
	// (client, freelancer, project) triple, updates notes and status.
	Upsert(ctx context.Context, db *gorm.DB, entry *Shortlist) error
	Find(ctx context.Context, db *gorm.DB, clientID, freelancerID, projectID snowflake.ID) (*Shortlist, error)
	ListByProject(ctx context.Context, db *gorm.DB, projectID snowflake.ID) ([]*Shortlist, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status ShortlistStatus) error
}

type InterviewRepository interface {
	Insert(ctx context.Context, db *gorm.DB, interview *Interview) error
	// ListByProject returns interviews soonest-first.
	ListByProject(ctx context.Context, db *gorm.DB, projectID snowflake.ID) ([]*Interview, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status InterviewStatus) error
}
