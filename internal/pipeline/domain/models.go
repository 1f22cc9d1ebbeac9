// Package domain contains the candidate-pipeline models: shortlist entries and
// interviews tracked per (project, freelancer) pair.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type ShortlistStatus string

const (
	ShortlistStatusShortlisted ShortlistStatus = "shortlisted"
	ShortlistStatusHired       ShortlistStatus = "hired"
	ShortlistStatusRejected    ShortlistStatus = "rejected"
)

type InterviewStatus string

const (
	InterviewStatusScheduled InterviewStatus = "scheduled"
	InterviewStatusCompleted InterviewStatus = "completed"
	InterviewStatusCancelled InterviewStatus = "cancelled"
)

type Shortlist struct {
	ID           snowflake.ID    `gorm:"primaryKey" json:"id"`
	ClientID     snowflake.ID    `gorm:"not null;uniqueIndex:idx_shortlists_triple" json:"client_id"`
	FreelancerID snowflake.ID    `gorm:"not null;uniqueIndex:idx_shortlists_triple" json:"freelancer_id"`
	ProjectID    snowflake.ID    `gorm:"not null;uniqueIndex:idx_shortlists_triple;index" json:"project_id"`
	Notes        string          `gorm:"type:text" json:"notes"`
	Status       ShortlistStatus `gorm:"type:text;not null;default:'shortlisted'" json:"status"`
	CreatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Shortlist) TableName() string { return "shortlists" }

type Interview struct {
	ID           snowflake.ID    `gorm:"primaryKey" json:"id"`
	ClientID     snowflake.ID    `gorm:"not null;index" json:"client_id"`
	FreelancerID snowflake.ID    `gorm:"not null;index" json:"freelancer_id"`
	ProjectID    snowflake.ID    `gorm:"not null;index" json:"project_id"`
	ScheduledAt  time.Time       `gorm:"not null" json:"scheduled_at"`
	MeetingLink  string          `gorm:"type:text" json:"meeting_link"`
	Notes        string          `gorm:"type:text" json:"notes"`
	Status       InterviewStatus `gorm:"type:text;not null;default:'scheduled'" json:"status"`
	CreatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Interview) TableName() string { return "interviews" }
