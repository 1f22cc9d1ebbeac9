package domain

import (
	"context"
	"errors"
)

type UpsertProfileRequest struct {
	Headline   string         `json:"headline"`
	Bio        string         `json:"bio"`
	Skills     map[string]any `json:"skills"`
	HourlyRate float64        `json:"hourly_rate"`
	Location   string         `json:"location"`
	AvatarURL  string         `json:"avatar_url"`
	Hidden     *bool          `json:"hidden,omitempty"`
}

type Service interface {
	// Upsert creates or updates the caller's profile.
	Upsert(ctx context.Context, req UpsertProfileRequest) (Profile, error)
	// GetByUserID fetches a profile; a non-owner view emits a profile_view
	// notification to the profile owner.
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	ApplyRating(ctx context.Context, userID string, avg float64, count int) error
}

var (
	ErrInvalidActor  = errors.New("invalid_actor")
	ErrInvalidUserID = errors.New("invalid_user_id")
	ErrNotFound      = errors.New("profile_not_found")
)
