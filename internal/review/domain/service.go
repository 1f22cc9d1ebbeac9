package domain

import (
	"context"
	"errors"
)

type SubmitReviewRequest struct {
	ProjectID string `json:"project_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type Service interface {
	// Submit files a review once the project is completed. Each participant
	// reviews the other side exactly once per project; the review waits for
	// admin moderation before it counts.
	Submit(ctx context.Context, req SubmitReviewRequest) (Review, error)
	// ListForUser returns approved reviews about the user.
	ListForUser(ctx context.Context, userID string) ([]Review, error)
	// ListPending returns reviews awaiting moderation. Admin only.
	ListPending(ctx context.Context) ([]Review, error)
	// Approve publishes the review and folds it into the reviewee's profile
	// rating. Admin only.
	Approve(ctx context.Context, id string) (Review, error)
	// Reject discards the review without affecting ratings. Admin only.
	Reject(ctx context.Context, id string) (Review, error)
}

var (
	ErrInvalidActor        = errors.New("invalid_actor")
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidRating       = errors.New("invalid_rating")
	ErrProjectNotFound     = errors.New("project_not_found")
	ErrProjectNotCompleted = errors.New("project_not_completed")
	ErrNotParticipant      = errors.New("not_project_participant")
	ErrDuplicateReview     = errors.New("duplicate_review")
	ErrNotFound            = errors.New("review_not_found")
	ErrNotModeratable      = errors.New("review_not_pending")
)
