package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, message *Message) error
	ListThread(ctx context.Context, db *gorm.DB, projectID, userA, userB snowflake.ID) ([]*Message, error)
	MarkThreadRead(ctx context.Context, db *gorm.DB, projectID, senderID, recipientID snowflake.ID) error
}
