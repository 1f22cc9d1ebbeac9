package domain

import (
	"context"
	"errors"
	"time"

	biddomain "github.com/gigbridge/gigbridge/internal/bid/domain"
	projectdomain "github.com/gigbridge/gigbridge/internal/project/domain"
)

type ShortlistRequest struct {
	BidID string `json:"bid_id"`
	Notes string `json:"notes"`
}

type ScheduleInterviewRequest struct {
	ProjectID    string     `json:"project_id"`
	FreelancerID string     `json:"freelancer_id"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	MeetingLink  string     `json:"meeting_link"`
	Notes        string     `json:"notes"`
}

type HireRequest struct {
	ProjectID    string `json:"project_id"`
	FreelancerID string `json:"freelancer_id"`
	// BidID optionally names the winning bid; when set it must belong to the
	// hired freelancer on the same project.
	BidID string `json:"bid_id,omitempty"`
}

type RejectRequest struct {
	ProjectID    string `json:"project_id"`
	FreelancerID string `json:"freelancer_id"`
	BidID        string `json:"bid_id,omitempty"`
}

// Service drives the candidate pipeline. Every operation authorizes the
// caller as the project's client (admins pass everywhere) before mutating.
type Service interface {
	// MarkViewed moves a pending bid to viewed.
	MarkViewed(ctx context.Context, bidID string) (biddomain.Bid, error)
	// Shortlist marks the bid shortlisted and upserts the shortlist entry.
	// Calling it again for the same candidate updates notes in place.
	Shortlist(ctx context.Context, req ShortlistRequest) (Shortlist, error)
	ScheduleInterview(ctx context.Context, req ScheduleInterviewRequest) (Interview, error)
	ListInterviews(ctx context.Context, projectID string) ([]Interview, error)
	// Hire assigns the freelancer and moves the project to in_progress in a
	// single transaction; every other live bid on the project is rejected.
	Hire(ctx context.Context, req HireRequest) (projectdomain.Project, error)
	// Reject closes out a candidate without touching the project.
	Reject(ctx context.Context, req RejectRequest) error
	Complete(ctx context.Context, projectID string) (projectdomain.Project, error)
	Cancel(ctx context.Context, projectID string) (projectdomain.Project, error)
}

var (
	ErrInvalidActor      = errors.New("invalid_actor")
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidSchedule   = errors.New("invalid_schedule_time")
	ErrBidNotFound       = errors.New("bid_not_found")
	ErrProjectNotFound   = errors.New("project_not_found")
	ErrProjectNotOpen    = errors.New("project_not_open")
	ErrProjectClosed     = errors.New("project_closed")
	ErrNotProjectOwner   = errors.New("not_project_owner")
	ErrBidMismatch       = errors.New("bid_project_mismatch")
	ErrInvalidTransition = errors.New("invalid_bid_transition")
	ErrProjectTransition = errors.New("invalid_project_transition")
	ErrCandidateNotFound = errors.New("candidate_not_found")
)
