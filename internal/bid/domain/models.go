// Package domain contains the bid model and service contract.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusViewed      Status = "viewed"
	StatusShortlisted Status = "shortlisted"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
)

// CanTransition reports whether a bid status change follows the pipeline
// edges. Accepted and rejected are terminal.
func CanTransition(current, target Status) bool {
	switch current {
	case StatusPending:
		return target == StatusViewed || target == StatusShortlisted ||
			target == StatusAccepted || target == StatusRejected
	case StatusViewed:
		return target == StatusShortlisted || target == StatusAccepted || target == StatusRejected
	case StatusShortlisted:
		return target == StatusAccepted || target == StatusRejected
	default:
		return false
	}
}

type Bid struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	ProjectID    snowflake.ID `gorm:"not null;uniqueIndex:idx_bids_project_freelancer" json:"project_id"`
	FreelancerID snowflake.ID `gorm:"not null;uniqueIndex:idx_bids_project_freelancer;index" json:"freelancer_id"`
	Amount       float64      `gorm:"not null" json:"amount"`
	DeliveryDays int          `gorm:"not null" json:"delivery_days"`
	Proposal     string       `gorm:"type:text" json:"proposal"`
	Status       Status       `gorm:"type:text;not null;default:'pending';index" json:"status"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Bid) TableName() string { return "bids" }
