package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/authctx"
	biddomain "github.com/gigbridge/gigbridge/internal/bid/domain"
	bidrepository "github.com/gigbridge/gigbridge/internal/bid/repository"
	identitydomain "github.com/gigbridge/gigbridge/internal/identity/domain"
	"github.com/gigbridge/gigbridge/internal/message/domain"
	"github.com/gigbridge/gigbridge/internal/message/repository"
	notificationdomain "github.com/gigbridge/gigbridge/internal/notification/domain"
	projectdomain "github.com/gigbridge/gigbridge/internal/project/domain"
	projectrepository "github.com/gigbridge/gigbridge/internal/project/repository"
	"github.com/gigbridge/gigbridge/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeNotifier struct {
	dispatched []notificationdomain.DispatchRequest
}

func (f *fakeNotifier) Dispatch(ctx context.Context, req notificationdomain.DispatchRequest) error {
	f.dispatched = append(f.dispatched, req)
	return nil
}

func (f *fakeNotifier) List(ctx context.Context, req notificationdomain.ListRequest) (notificationdomain.ListResponse, error) {
	return notificationdomain.ListResponse{}, nil
}

func (f *fakeNotifier) MarkRead(ctx context.Context, id string) error { return nil }

func (f *fakeNotifier) MarkAllRead(ctx context.Context) error { return nil }

type fixture struct {
	db       *gorm.DB
	svc      domain.Service
	notifier *fakeNotifier
	genID    *snowflake.Node

	clientID     snowflake.ID
	freelancerID snowflake.ID
	projectID    snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&projectdomain.Project{}, &biddomain.Bid{}, &domain.Message{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	notifier := &fakeNotifier{}
	svc := New(Params{
		DB:       dbConn,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		Bids:     bidrepository.Provide(),
		Projects: projectrepository.Provide(),
		Notifier: notifier,
	})

	f := &fixture{
		db:           dbConn,
		svc:          svc,
		notifier:     notifier,
		genID:        node,
		clientID:     node.Generate(),
		freelancerID: node.Generate(),
	}

	now := time.Now().UTC()
	project := projectdomain.Project{
		ID:        node.Generate(),
		ClientID:  f.clientID,
		Title:     "Build an API",
		Slug:      "build-an-api",
		Status:    projectdomain.StatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := dbConn.Create(&project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	f.projectID = project.ID

	bid := biddomain.Bid{
		ID:           node.Generate(),
		ProjectID:    project.ID,
		FreelancerID: f.freelancerID,
		Amount:       250,
		DeliveryDays: 7,
		Status:       biddomain.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := dbConn.Create(&bid).Error; err != nil {
		t.Fatalf("failed to seed bid: %v", err)
	}
	return f
}

func actorCtx(id snowflake.ID, role string) context.Context {
	return authctx.WithActor(context.Background(), authctx.Actor{UserID: id, Role: role})
}

func TestSendBetweenClientAndBidder(t *testing.T) {
	f := newFixture(t)

	msg, err := f.svc.Send(actorCtx(f.clientID, identitydomain.RoleClient), domain.SendMessageRequest{
		ProjectID:   f.projectID.String(),
		RecipientID: f.freelancerID.String(),
		Body:        "Can you start Monday?",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if msg.SenderID != f.clientID || msg.RecipientID != f.freelancerID {
		t.Fatal("unexpected thread endpoints")
	}
	if len(f.notifier.dispatched) != 1 || f.notifier.dispatched[0].Type != notificationdomain.TypeNewMessage {
		t.Fatal("expected a new-message notification")
	}

	reply, err := f.svc.Send(actorCtx(f.freelancerID, identitydomain.RoleFreelancer), domain.SendMessageRequest{
		ProjectID:   f.projectID.String(),
		RecipientID: f.clientID.String(),
		Body:        "Yes.",
	})
	if err != nil {
		t.Fatalf("reply failed: %v", err)
	}

	thread, err := f.svc.ListThread(actorCtx(f.clientID, identitydomain.RoleClient),
		f.projectID.String(), f.freelancerID.String())
	if err != nil {
		t.Fatalf("list thread failed: %v", err)
	}
	if len(thread) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(thread))
	}
	// Oldest first.
	if thread[0].ID != msg.ID || thread[1].ID != reply.ID {
		t.Fatal("thread should be ordered oldest first")
	}
}

func TestSendRejectsOutsiders(t *testing.T) {
	f := newFixture(t)
	outsiderID := f.genID.Generate()

	_, err := f.svc.Send(actorCtx(outsiderID, identitydomain.RoleFreelancer), domain.SendMessageRequest{
		ProjectID:   f.projectID.String(),
		RecipientID: f.clientID.String(),
		Body:        "Hello",
	})
	if !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestSendRequiresClientOnOneEnd(t *testing.T) {
	f := newFixture(t)

	// Second bidder on the same project: freelancer-to-freelancer is blocked.
	otherID := f.genID.Generate()
	now := time.Now().UTC()
	bid := biddomain.Bid{
		ID:           f.genID.Generate(),
		ProjectID:    f.projectID,
		FreelancerID: otherID,
		Amount:       300,
		DeliveryDays: 5,
		Status:       biddomain.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := f.db.Create(&bid).Error; err != nil {
		t.Fatalf("failed to seed bid: %v", err)
	}

	_, err := f.svc.Send(actorCtx(f.freelancerID, identitydomain.RoleFreelancer), domain.SendMessageRequest{
		ProjectID:   f.projectID.String(),
		RecipientID: otherID.String(),
		Body:        "Hey",
	})
	if !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestMarkThreadRead(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Send(actorCtx(f.clientID, identitydomain.RoleClient), domain.SendMessageRequest{
		ProjectID:   f.projectID.String(),
		RecipientID: f.freelancerID.String(),
		Body:        "Ping",
	}); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	err := f.svc.MarkThreadRead(actorCtx(f.freelancerID, identitydomain.RoleFreelancer),
		f.projectID.String(), f.clientID.String())
	if err != nil {
		t.Fatalf("mark read failed: %v", err)
	}

	var unread int64
	if err := f.db.Model(&domain.Message{}).
		Where("project_id = ? AND recipient_id = ? AND read_at IS NULL", f.projectID, f.freelancerID).
		Count(&unread).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if unread != 0 {
		t.Fatalf("expected no unread messages, got %d", unread)
	}
}
