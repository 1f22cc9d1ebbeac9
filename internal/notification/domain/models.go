// Package domain contains persistence models for notifications.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Type enumerates notification event kinds.
type Type string

const (
	TypeNewBid         Type = "new_bid"
	TypeBidShortlisted Type = "bid_shortlisted"
	TypeBidRejected    Type = "bid_rejected"
	TypeProjectStatus  Type = "project_status"
	TypeInterview      Type = "interview_scheduled"
	TypeNewMessage     Type = "new_message"
	TypeNewReview      Type = "new_review"
	TypeTicketResolved Type = "ticket_resolved"
	TypeProfileView    Type = "profile_view"
)

// Notification is a row in the recipient's notification feed.
type Notification struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	RecipientID snowflake.ID      `gorm:"not null;index" json:"recipient_id"`
	Type        Type              `gorm:"type:text;not null" json:"type"`
	Title       string            `gorm:"type:text;not null" json:"title"`
	Message     string            `gorm:"type:text" json:"message"`
	Data        datatypes.JSONMap `gorm:"type:jsonb" json:"data,omitempty"`
	IsRead      bool              `gorm:"not null;default:false" json:"is_read"`
	ReadAt      *time.Time        `gorm:"" json:"read_at,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Notification) TableName() string { return "notifications" }
