// Package email delivers transactional email copies of notifications.
package email

import "context"

type Message struct {
	To      string
	Subject string
	Body    string
}

type Provider interface {
	Send(ctx context.Context, msg Message) error
}

// Noop drops every message. Used when SMTP is not configured.
type Noop struct{}

func (Noop) Send(ctx context.Context, msg Message) error { return nil }
