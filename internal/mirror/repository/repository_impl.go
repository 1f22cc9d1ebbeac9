package repository

import (
	"context"
	"errors"
	"time"

	"github.com/gigbridge/gigbridge/internal/mirror/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type checkpointRepo struct{}

func ProvideCheckpoints() domain.CheckpointRepository { return &checkpointRepo{} }

func (r *checkpointRepo) Get(ctx context.Context, db *gorm.DB, entity string) (*domain.Checkpoint, error) {
	var checkpoint domain.Checkpoint
	err := db.WithContext(ctx).First(&checkpoint, "entity = ?", entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &checkpoint, nil
}

func (r *checkpointRepo) Put(ctx context.Context, db *gorm.DB, checkpoint *domain.Checkpoint) error {
	checkpoint.UpdatedAt = time.Now().UTC()
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "entity"}},
		DoUpdates: clause.Assignments(map[string]any{
			"last_synced_at": checkpoint.LastSyncedAt,
			"updated_at":     checkpoint.UpdatedAt,
		}),
	}).Create(checkpoint).Error
}
