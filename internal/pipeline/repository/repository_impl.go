package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/pipeline/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type shortlistRepo struct{}

func ProvideShortlists() domain.ShortlistRepository { return &shortlistRepo{} }

func (r *shortlistRepo) Upsert(ctx context.Context, db *gorm.DB, entry *domain.Shortlist) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "client_id"},
			{Name: "freelancer_id"},
			{Name: "project_id"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"notes":      entry.Notes,
			"status":     entry.Status,
			"updated_at": time.Now().UTC(),
		}),
	}).Create(entry).Error
}

func (r *shortlistRepo) Find(ctx context.Context, db *gorm.DB, clientID, freelancerID, projectID snowflake.ID) (*domain.Shortlist, error) {
	var entry domain.Shortlist
	err := db.WithContext(ctx).
		First(&entry, "client_id = ? AND freelancer_id = ? AND project_id = ?", clientID, freelancerID, projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *shortlistRepo) ListByProject(ctx context.Context, db *gorm.DB, projectID snowflake.ID) ([]*domain.Shortlist, error) {
	var entries []*domain.Shortlist
	err := db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *shortlistRepo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.ShortlistStatus) error {
	return db.WithContext(ctx).
		Model(&domain.Shortlist{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()}).Error
}

type interviewRepo struct{}

func ProvideInterviews() domain.InterviewRepository { return &interviewRepo{} }

func (r *interviewRepo) Insert(ctx context.Context, db *gorm.DB, interview *domain.Interview) error {
	return db.WithContext(ctx).Create(interview).Error
}

func (r *interviewRepo) ListByProject(ctx context.Context, db *gorm.DB, projectID snowflake.ID) ([]*domain.Interview, error) {
	var interviews []*domain.Interview
	err := db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("scheduled_at ASC").
		Find(&interviews).Error
	if err != nil {
		return nil, err
	}
	return interviews, nil
}

func (r *interviewRepo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.InterviewStatus) error {
	return db.WithContext(ctx).
		Model(&domain.Interview{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()}).Error
}
