package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type DispatchRequest struct {
	RecipientID snowflake.ID
	Type        Type
	Title       string
	Message     string
	Data        map[string]any
	// EmailCopy sends a best-effort email alongside the in-app notification.
	EmailCopy bool
}

type ListRequest struct {
	UnreadOnly bool
	PageToken  string
	PageSize   int
}

type ListResponse struct {
	Notifications []Notification `json:"notifications"`
	NextPageToken string         `json:"next_page_token"`
	HasMore       bool           `json:"has_more"`
	UnreadCount   int64          `json:"unread_count"`
}

type Service interface {
	// Dispatch inserts the notification and publishes it to live
	// subscribers. Failures are logged and returned, but callers treat the
	// dispatch as fire-and-forget: a failed notification never rolls back
	// the mutation that triggered it.
	Dispatch(ctx context.Context, req DispatchRequest) error
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

var (
	ErrInvalidActor     = errors.New("invalid_actor")
	ErrInvalidRecipient = errors.New("invalid_recipient")
	ErrInvalidID        = errors.New("invalid_id")
	ErrNotFound         = errors.New("notification_not_found")
)
