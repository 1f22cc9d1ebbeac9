package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/bid/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository { return &repo{} }

func (r *repo) Insert(ctx context.Context, db *gorm.DB, bid *domain.Bid) error {
	return db.WithContext(ctx).Create(bid).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Bid, error) {
	var bid domain.Bid
	err := db.WithContext(ctx).First(&bid, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *repo) FindByProjectAndFreelancer(ctx context.Context, db *gorm.DB, projectID, freelancerID snowflake.ID) (*domain.Bid, error) {
	var bid domain.Bid
	err := db.WithContext(ctx).
		First(&bid, "project_id = ? AND freelancer_id = ?", projectID, freelancerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *repo) ListByProject(ctx context.Context, db *gorm.DB, projectID snowflake.ID) ([]*domain.Bid, error) {
	var bids []*domain.Bid
	err := db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

func (r *repo) ListByFreelancer(ctx context.Context, db *gorm.DB, freelancerID snowflake.ID) ([]*domain.Bid, error) {
	var bids []*domain.Bid
	err := db.WithContext(ctx).
		Where("freelancer_id = ?", freelancerID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.Status) error {
	return db.WithContext(ctx).
		Model(&domain.Bid{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()}).Error
}

func (r *repo) RejectOpenByProject(ctx context.Context, db *gorm.DB, projectID, exceptFreelancerID snowflake.ID) ([]*domain.Bid, error) {
	open := []domain.Status{domain.StatusPending, domain.StatusViewed, domain.StatusShortlisted}

	var losers []*domain.Bid
	err := db.WithContext(ctx).
		Where("project_id = ? AND freelancer_id <> ? AND status IN ?", projectID, exceptFreelancerID, open).
		Find(&losers).Error
	if err != nil {
		return nil, err
	}
	if len(losers) == 0 {
		return nil, nil
	}

	ids := make([]snowflake.ID, 0, len(losers))
	for _, bid := range losers {
		ids = append(ids, bid.ID)
	}
	err = db.WithContext(ctx).
		Model(&domain.Bid{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"status": domain.StatusRejected, "updated_at": time.Now().UTC()}).Error
	if err != nil {
		return nil, err
	}
	for _, bid := range losers {
		bid.Status = domain.StatusRejected
	}
	return losers, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Bid{}, "id = ?", id).Error
}

func (r *repo) ListChangedSince(ctx context.Context, db *gorm.DB, since time.Time, limit int) ([]*domain.Bid, error) {
	var bids []*domain.Bid
	err := db.WithContext(ctx).
		Where("updated_at > ?", since).
		Order("updated_at ASC").
		Limit(limit).
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}
