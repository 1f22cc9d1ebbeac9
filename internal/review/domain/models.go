// Package domain contains reviews and their moderation lifecycle.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Review struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	ProjectID  snowflake.ID `gorm:"not null;uniqueIndex:idx_reviews_project_reviewer" json:"project_id"`
	ReviewerID snowflake.ID `gorm:"not null;uniqueIndex:idx_reviews_project_reviewer" json:"reviewer_id"`
	RevieweeID snowflake.ID `gorm:"not null;index" json:"reviewee_id"`
	Rating     int          `gorm:"not null" json:"rating"`
	Comment    string       `gorm:"type:text" json:"comment"`
	Status     Status       `gorm:"type:text;not null;default:'pending';index" json:"status"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Review) TableName() string { return "reviews" }
