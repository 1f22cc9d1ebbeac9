package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, notification *Notification) error
	ListByRecipient(ctx context.Context, db *gorm.DB, recipientID snowflake.ID, unreadOnly bool, page pagination.Pagination) ([]*Notification, error)
	CountUnread(ctx context.Context, db *gorm.DB, recipientID snowflake.ID) (int64, error)
	MarkRead(ctx context.Context, db *gorm.DB, recipientID, id snowflake.ID) (int64, error)
	MarkAllRead(ctx context.Context, db *gorm.DB, recipientID snowflake.ID) error
}
