package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/profile/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, profile *domain.Profile) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"headline", "bio", "skills", "hourly_rate", "location", "avatar_url", "hidden", "updated_at",
		}),
	}).Create(profile).Error
}

func (r *repo) FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*domain.Profile, error) {
	var profile domain.Profile
	err := db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repo) UpdateRating(ctx context.Context, db *gorm.DB, userID snowflake.ID, avg float64, count int) error {
	return db.WithContext(ctx).Model(&domain.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"rating_avg":   avg,
			"rating_count": count,
			"updated_at":   gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}
