package domain

import (
	"context"

	"gorm.io/gorm"
)

type CheckpointRepository interface {
	Get(ctx context.Context, db *gorm.DB, entity string) (*Checkpoint, error)
	Put(ctx context.Context, db *gorm.DB, checkpoint *Checkpoint) error
}
