package domain

import (
	"context"
	"errors"
)

type SendMessageRequest struct {
	ProjectID   string `json:"project_id"`
	RecipientID string `json:"recipient_id"`
	Body        string `json:"body"`
}

type Service interface {
	// Send delivers a message between the project's client and a freelancer
	// who has bid on or been assigned to the project. Anyone else is denied.
	Send(ctx context.Context, req SendMessageRequest) (Message, error)
	// ListThread returns the conversation between the caller and the other
	// participant on a project, oldest first.
	ListThread(ctx context.Context, projectID, otherUserID string) ([]Message, error)
	// MarkThreadRead marks every message the other participant sent to the
	// caller on the project as read.
	MarkThreadRead(ctx context.Context, projectID, otherUserID string) error
}

var (
	ErrInvalidActor     = errors.New("invalid_actor")
	ErrInvalidID        = errors.New("invalid_id")
	ErrEmptyBody        = errors.New("empty_message_body")
	ErrProjectNotFound  = errors.New("project_not_found")
	ErrNotParticipant   = errors.New("not_project_participant")
	ErrInvalidRecipient = errors.New("invalid_recipient")
)
