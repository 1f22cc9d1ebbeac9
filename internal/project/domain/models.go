// Package domain contains the project model and service contract.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// CanTransition reports whether a project status change is allowed.
// Completed is terminal; cancelled is reachable from open and in_progress.
func CanTransition(current, target Status) bool {
	switch current {
	case StatusOpen:
		return target == StatusInProgress || target == StatusCancelled
	case StatusInProgress:
		return target == StatusCompleted || target == StatusCancelled
	default:
		return false
	}
}

type Project struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	ClientID     snowflake.ID      `gorm:"not null;index" json:"client_id"`
	FreelancerID *snowflake.ID     `gorm:"index" json:"freelancer_id,omitempty"`
	Title        string            `gorm:"type:text;not null" json:"title"`
	Slug         string            `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Description  string            `gorm:"type:text" json:"description"`
	Category     string            `gorm:"type:text;index" json:"category"`
	Skills       datatypes.JSONMap `gorm:"type:jsonb" json:"skills,omitempty"`
	BudgetMin    float64           `gorm:"not null;default:0" json:"budget_min"`
	BudgetMax    float64           `gorm:"not null;default:0" json:"budget_max"`
	Deadline     *time.Time        `gorm:"" json:"deadline,omitempty"`
	Status       Status            `gorm:"type:text;not null;default:'open';index" json:"status"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Project) TableName() string { return "projects" }
