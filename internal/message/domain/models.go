// Package domain contains project-scoped direct messages.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Message struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	ProjectID   snowflake.ID `gorm:"not null;index:idx_messages_thread" json:"project_id"`
	SenderID    snowflake.ID `gorm:"not null;index:idx_messages_thread" json:"sender_id"`
	RecipientID snowflake.ID `gorm:"not null;index:idx_messages_thread" json:"recipient_id"`
	Body        string       `gorm:"type:text;not null" json:"body"`
	ReadAt      *time.Time   `gorm:"" json:"read_at,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Message) TableName() string { return "messages" }
