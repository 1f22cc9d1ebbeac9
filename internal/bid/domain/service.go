package domain

import (
	"context"
	"errors"
)

type SubmitBidRequest struct {
	ProjectID    string  `json:"project_id"`
	Amount       float64 `json:"amount"`
	DeliveryDays int     `json:"delivery_days"`
	Proposal     string  `json:"proposal"`
}

type Service interface {
	// Submit places a bid on an open project. A freelancer can hold at most
	// one bid per project; duplicates surface as ErrDuplicateBid.
	Submit(ctx context.Context, req SubmitBidRequest) (Bid, error)
	Get(ctx context.Context, id string) (Bid, error)
	// ListByProject returns the project's bids newest-first. Only the owning
	// client or an admin may call it.
	ListByProject(ctx context.Context, projectID string) ([]Bid, error)
	// ListMine returns the calling freelancer's bids newest-first.
	ListMine(ctx context.Context) ([]Bid, error)
	// AcceptedForProject returns the hired freelancer's bid. Visible to the
	// project's client, the hired freelancer, and admins.
	AcceptedForProject(ctx context.Context, projectID string) (Bid, error)
	// Withdraw removes the caller's bid while it is still pending or viewed.
	Withdraw(ctx context.Context, id string) error
}

var (
	ErrInvalidActor    = errors.New("invalid_actor")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrInvalidDelivery = errors.New("invalid_delivery_days")
	ErrProjectNotFound = errors.New("project_not_found")
	ErrProjectNotOpen  = errors.New("project_not_open")
	ErrOwnProject      = errors.New("cannot_bid_own_project")
	ErrDuplicateBid    = errors.New("duplicate_bid")
	ErrNotFound        = errors.New("bid_not_found")
	ErrNotBidOwner     = errors.New("not_bid_owner")
	ErrRateLimited     = errors.New("bid_rate_limited")
	ErrNotWithdrawable = errors.New("bid_not_withdrawable")
)
