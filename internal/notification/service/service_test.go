package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/authctx"
	identitydomain "github.com/gigbridge/gigbridge/internal/identity/domain"
	identityrepository "github.com/gigbridge/gigbridge/internal/identity/repository"
	"github.com/gigbridge/gigbridge/internal/notification/domain"
	"github.com/gigbridge/gigbridge/internal/notification/livefeed"
	"github.com/gigbridge/gigbridge/internal/notification/repository"
	"github.com/gigbridge/gigbridge/internal/providers/email"
	"github.com/gigbridge/gigbridge/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingEmail struct {
	sent []email.Message
}

func (r *recordingEmail) Send(ctx context.Context, msg email.Message) error {
	r.sent = append(r.sent, msg)
	return nil
}

type fixture struct {
	db          *gorm.DB
	svc         domain.Service
	hub         *livefeed.Hub
	email       *recordingEmail
	genID       *snowflake.Node
	recipientID snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&identitydomain.User{}, &domain.Notification{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	hub := livefeed.NewHub()
	mail := &recordingEmail{}
	svc := New(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
		Users: identityrepository.Provide(),
		Hub:   hub,
		Email: mail,
	})
	return &fixture{
		db:          dbConn,
		svc:         svc,
		hub:         hub,
		email:       mail,
		genID:       node,
		recipientID: node.Generate(),
	}
}

func (f *fixture) recipientCtx() context.Context {
	return authctx.WithActor(context.Background(), authctx.Actor{
		UserID: f.recipientID,
		Role:   identitydomain.RoleFreelancer,
	})
}

func (f *fixture) dispatch(t *testing.T, title string) {
	t.Helper()
	err := f.svc.Dispatch(context.Background(), domain.DispatchRequest{
		RecipientID: f.recipientID,
		Type:        domain.TypeNewBid,
		Title:       title,
	})
	if err != nil {
		t.Fatalf("failed to dispatch: %v", err)
	}
}

func TestDispatchPersistsAndPublishes(t *testing.T) {
	f := newFixture(t)

	sub, backlog, err := f.hub.Subscribe(f.recipientID)
	if err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}
	defer sub.Close()
	if len(backlog) != 0 {
		t.Fatalf("expected empty backlog, got %d events", len(backlog))
	}

	f.dispatch(t, "New bid on your project")

	var count int64
	if err := f.db.Model(&domain.Notification{}).
		Where("recipient_id = ?", f.recipientID).
		Count(&count).Error; err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 persisted notification, got %d", count)
	}

	select {
	case event := <-sub.Events():
		if event.Title != "New bid on your project" {
			t.Fatalf("unexpected event title %q", event.Title)
		}
		if event.Type != string(domain.TypeNewBid) {
			t.Fatalf("unexpected event type %q", event.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a live event, got none")
	}
}

func TestDispatchRejectsMissingRecipient(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Dispatch(context.Background(), domain.DispatchRequest{
		Type:  domain.TypeNewBid,
		Title: "orphaned",
	})
	if !errors.Is(err, domain.ErrInvalidRecipient) {
		t.Fatalf("expected ErrInvalidRecipient, got %v", err)
	}
}

func TestDispatchSendsEmailCopy(t *testing.T) {
	f := newFixture(t)

	user := identitydomain.User{
		ID:           f.recipientID,
		Email:        "freelancer@example.com",
		PasswordHash: "x",
		DisplayName:  "Freelancer",
		Role:         identitydomain.RoleFreelancer,
	}
	if err := f.db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	err := f.svc.Dispatch(context.Background(), domain.DispatchRequest{
		RecipientID: f.recipientID,
		Type:        domain.TypeTicketResolved,
		Title:       "Your ticket was resolved",
		Message:     "See the resolution notes.",
		EmailCopy:   true,
	})
	if err != nil {
		t.Fatalf("failed to dispatch: %v", err)
	}

	if len(f.email.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(f.email.sent))
	}
	msg := f.email.sent[0]
	if msg.To != user.Email {
		t.Fatalf("expected email to %q, got %q", user.Email, msg.To)
	}
	if msg.Subject != "Your ticket was resolved" {
		t.Fatalf("unexpected email subject %q", msg.Subject)
	}
}

func TestListPaginatesAndCountsUnread(t *testing.T) {
	f := newFixture(t)

	f.dispatch(t, "first")
	f.dispatch(t, "second")
	f.dispatch(t, "third")

	page, err := f.svc.List(f.recipientCtx(), domain.ListRequest{PageSize: 2})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(page.Notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(page.Notifications))
	}
	if !page.HasMore || page.NextPageToken == "" {
		t.Fatal("expected a next page")
	}
	if page.UnreadCount != 3 {
		t.Fatalf("expected unread count 3, got %d", page.UnreadCount)
	}
	// Newest first.
	if page.Notifications[0].Title != "third" {
		t.Fatalf("expected newest notification first, got %q", page.Notifications[0].Title)
	}

	rest, err := f.svc.List(f.recipientCtx(), domain.ListRequest{PageSize: 2, PageToken: page.NextPageToken})
	if err != nil {
		t.Fatalf("failed to list second page: %v", err)
	}
	if len(rest.Notifications) != 1 {
		t.Fatalf("expected 1 notification on second page, got %d", len(rest.Notifications))
	}
	if rest.HasMore {
		t.Fatal("expected final page")
	}
	if rest.Notifications[0].Title != "first" {
		t.Fatalf("expected oldest notification last, got %q", rest.Notifications[0].Title)
	}
}

func TestListRequiresActor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.List(context.Background(), domain.ListRequest{})
	if !errors.Is(err, domain.ErrInvalidActor) {
		t.Fatalf("expected ErrInvalidActor, got %v", err)
	}
}

func TestMarkRead(t *testing.T) {
	f := newFixture(t)

	f.dispatch(t, "unread")
	page, err := f.svc.List(f.recipientCtx(), domain.ListRequest{})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}

	if err := f.svc.MarkRead(f.recipientCtx(), page.Notifications[0].ID.String()); err != nil {
		t.Fatalf("failed to mark read: %v", err)
	}

	page, err = f.svc.List(f.recipientCtx(), domain.ListRequest{})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if page.UnreadCount != 0 {
		t.Fatalf("expected unread count 0, got %d", page.UnreadCount)
	}
}

func TestMarkReadUnknownNotification(t *testing.T) {
	f := newFixture(t)

	err := f.svc.MarkRead(f.recipientCtx(), f.genID.Generate().String())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	err = f.svc.MarkRead(f.recipientCtx(), "not-an-id")
	if !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	f := newFixture(t)

	f.dispatch(t, "private")
	page, err := f.svc.List(f.recipientCtx(), domain.ListRequest{})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}

	otherCtx := authctx.WithActor(context.Background(), authctx.Actor{
		UserID: f.genID.Generate(),
		Role:   identitydomain.RoleClient,
	})
	err = f.svc.MarkRead(otherCtx, page.Notifications[0].ID.String())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another recipient's notification, got %v", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	f := newFixture(t)

	f.dispatch(t, "first")
	f.dispatch(t, "second")

	if err := f.svc.MarkAllRead(f.recipientCtx()); err != nil {
		t.Fatalf("failed to mark all read: %v", err)
	}

	page, err := f.svc.List(f.recipientCtx(), domain.ListRequest{UnreadOnly: true})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(page.Notifications) != 0 || page.UnreadCount != 0 {
		t.Fatalf("expected no unread notifications, got %d (count %d)", len(page.Notifications), page.UnreadCount)
	}
}
