// Package domain contains the outbound document-mirror models. Mirrored
// documents are denormalized copies of projects and bids pushed to a
// secondary read store; the relational database stays the source of truth.
package domain

import "time"

// Checkpoint is the per-entity watermark the interval worker resumes from.
type Checkpoint struct {
	Entity       string    `gorm:"primaryKey;type:text" json:"entity"`
	LastSyncedAt time.Time `gorm:"not null" json:"last_synced_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Checkpoint) TableName() string { return "mirror_checkpoints" }

// BidDoc is the mirrored form of a bid.
type BidDoc struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	FreelancerID string    `json:"freelancer_id"`
	Amount       float64   `json:"amount"`
	DeliveryDays int       `json:"delivery_days"`
	Status       string    `json:"status"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProjectDoc is the mirrored form of a project with its bids embedded.
type ProjectDoc struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id"`
	FreelancerID string    `json:"freelancer_id,omitempty"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Category     string    `json:"category"`
	BudgetMin    float64   `json:"budget_min"`
	BudgetMax    float64   `json:"budget_max"`
	Status       string    `json:"status"`
	Bids         []BidDoc  `json:"bids"`
	UpdatedAt    time.Time `json:"updated_at"`
}
