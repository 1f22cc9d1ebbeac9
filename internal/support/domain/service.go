package domain

import (
	"context"
	"errors"
)

type OpenTicketRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Service interface {
	// Open files a ticket for the caller and returns it with a customer-facing
	// uuid reference.
	Open(ctx context.Context, req OpenTicketRequest) (Ticket, error)
	ListMine(ctx context.Context) ([]Ticket, error)
	// List returns tickets, optionally filtered by status. Admin only.
	List(ctx context.Context, status string) ([]Ticket, error)
	// SetInReview claims the ticket for review. Admin only.
	SetInReview(ctx context.Context, id string) (Ticket, error)
	// Resolve records the resolution note and notifies the opener. Admin only.
	Resolve(ctx context.Context, id, resolution string) (Ticket, error)
	// Close ends the ticket. Admin only.
	Close(ctx context.Context, id string) (Ticket, error)
}

var (
	ErrInvalidActor      = errors.New("invalid_actor")
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidSubject    = errors.New("invalid_subject")
	ErrNotFound          = errors.New("ticket_not_found")
	ErrInvalidTransition = errors.New("invalid_ticket_transition")
)
