package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Profile holds the public marketplace profile attached to a user.
type Profile struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	UserID     snowflake.ID      `gorm:"not null;uniqueIndex" json:"user_id"`
	Headline   string            `gorm:"type:text" json:"headline"`
	Bio        string            `gorm:"type:text" json:"bio"`
	Skills     datatypes.JSONMap `gorm:"type:jsonb" json:"skills,omitempty"`
	HourlyRate float64           `gorm:"" json:"hourly_rate"`
	Location   string            `gorm:"type:text" json:"location"`
	AvatarURL  string            `gorm:"type:text" json:"avatar_url"`
	Hidden     bool              `gorm:"not null;default:false" json:"hidden"`
	// RatingAvg and RatingCount are denormalized from approved reviews.
	RatingAvg   float64   `gorm:"not null;default:0" json:"rating_avg"`
	RatingCount int       `gorm:"not null;default:0" json:"rating_count"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Profile) TableName() string { return "profiles" }
