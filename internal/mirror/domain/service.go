package domain

import (
	"context"
	"errors"
)

type Action string

const (
	ActionProject Action = "project"
	ActionBid     Action = "bid"
	ActionAll     Action = "all"
)

type SyncRequest struct {
	Action Action `json:"action"`
	// IDs limits the sync to specific source rows. Empty means everything
	// changed since the checkpoint.
	IDs []string `json:"ids,omitempty"`
}

type SyncResult struct {
	RunID  string `json:"run_id"`
	Synced int    `json:"synced"`
	Failed int    `json:"failed"`
}

// Service pushes document copies to the mirror store. Sync never fails the
// caller for individual document errors; they are counted in Failed.
type Service interface {
	Sync(ctx context.Context, req SyncRequest) (SyncResult, error)
}

var (
	ErrInvalidActor  = errors.New("invalid_actor")
	ErrInvalidAction = errors.New("invalid_mirror_action")
	ErrDisabled      = errors.New("mirror_disabled")
)
