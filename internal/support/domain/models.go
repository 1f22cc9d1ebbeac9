// Package domain contains support tickets and their lifecycle.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusOpen     Status = "open"
	StatusInReview Status = "in_review"
	StatusResolved Status = "resolved"
	StatusClosed   Status = "closed"
)

// CanTransition reports whether a ticket status change is allowed. Closed is
// terminal; resolved tickets can still be closed.
func CanTransition(current, target Status) bool {
	switch current {
	case StatusOpen:
		return target == StatusInReview || target == StatusResolved || target == StatusClosed
	case StatusInReview:
		return target == StatusResolved || target == StatusClosed
	case StatusResolved:
		return target == StatusClosed
	default:
		return false
	}
}

type Ticket struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	Reference  string       `gorm:"type:text;not null;uniqueIndex" json:"reference"`
	OpenerID   snowflake.ID `gorm:"not null;index" json:"opener_id"`
	Subject    string       `gorm:"type:text;not null" json:"subject"`
	Body       string       `gorm:"type:text" json:"body"`
	Status     Status       `gorm:"type:text;not null;default:'open';index" json:"status"`
	Resolution string       `gorm:"type:text" json:"resolution,omitempty"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Ticket) TableName() string { return "support_tickets" }
