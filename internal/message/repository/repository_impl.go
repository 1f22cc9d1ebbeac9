package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/message/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository { return &repo{} }

func (r *repo) Insert(ctx context.Context, db *gorm.DB, message *domain.Message) error {
	return db.WithContext(ctx).Create(message).Error
}

func (r *repo) ListThread(ctx context.Context, db *gorm.DB, projectID, userA, userB snowflake.ID) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *repo) MarkThreadRead(ctx context.Context, db *gorm.DB, projectID, senderID, recipientID snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("project_id = ? AND sender_id = ? AND recipient_id = ? AND read_at IS NULL",
			projectID, senderID, recipientID).
		Update("read_at", time.Now().UTC()).Error
}
