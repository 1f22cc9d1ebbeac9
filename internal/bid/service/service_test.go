package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/authctx"
	"github.com/gigbridge/gigbridge/internal/bid/domain"
	"github.com/gigbridge/gigbridge/internal/bid/repository"
	identitydomain "github.com/gigbridge/gigbridge/internal/identity/domain"
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
	projects projectdomain.Repository
	notifier *fakeNotifier
	genID    *snowflake.Node

	clientID     snowflake.ID
	freelancerID snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&projectdomain.Project{}, &domain.Bid{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	notifier := &fakeNotifier{}
	projects := projectrepository.Provide()
	svc := New(Params{
		DB:       dbConn,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		Projects: projects,
		Notifier: notifier,
	})

	return &fixture{
		db:           dbConn,
		svc:          svc,
		projects:     projects,
		notifier:     notifier,
		genID:        node,
		clientID:     node.Generate(),
		freelancerID: node.Generate(),
	}
}

func (f *fixture) seedProject(t *testing.T, status projectdomain.Status) projectdomain.Project {
	t.Helper()
	now := time.Now().UTC()
	project := projectdomain.Project{
		ID:        f.genID.Generate(),
		ClientID:  f.clientID,
		Title:     "Build an API",
		Slug:      "build-an-api-" + f.genID.Generate().String(),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := f.db.Create(&project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return project
}

func (f *fixture) freelancerCtx() context.Context {
	return authctx.WithActor(context.Background(), authctx.Actor{
		UserID: f.freelancerID,
		Role:   identitydomain.RoleFreelancer,
	})
}

func (f *fixture) clientCtx() context.Context {
	return authctx.WithActor(context.Background(), authctx.Actor{
		UserID: f.clientID,
		Role:   identitydomain.RoleClient,
	})
}

func TestSubmitNotifiesClient(t *testing.T) {
	f := newFixture(t)
	project := f.seedProject(t, projectdomain.StatusOpen)

	bid, err := f.svc.Submit(f.freelancerCtx(), domain.SubmitBidRequest{
		ProjectID:    project.ID.String(),
		Amount:       250,
		DeliveryDays: 7,
		Proposal:     "I can do this.",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if bid.Status != domain.StatusPending {
		t.Fatalf("expected pending, got %s", bid.Status)
	}
	if len(f.notifier.dispatched) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.notifier.dispatched))
	}
	if f.notifier.dispatched[0].RecipientID != f.clientID {
		t.Fatal("notification should target the project's client")
	}
}

func TestSubmitRejectsSecondBid(t *testing.T) {
	f := newFixture(t)
	project := f.seedProject(t, projectdomain.StatusOpen)

	req := domain.SubmitBidRequest{
		ProjectID:    project.ID.String(),
		Amount:       250,
		DeliveryDays: 7,
	}
	if _, err := f.svc.Submit(f.freelancerCtx(), req); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	_, err := f.svc.Submit(f.freelancerCtx(), req)
	if !errors.Is(err, domain.ErrDuplicateBid) {
		t.Fatalf("expected ErrDuplicateBid, got %v", err)
	}
}

func TestSubmitRejectsClosedProject(t *testing.T) {
	f := newFixture(t)
	project := f.seedProject(t, projectdomain.StatusInProgress)

	_, err := f.svc.Submit(f.freelancerCtx(), domain.SubmitBidRequest{
		ProjectID:    project.ID.String(),
		Amount:       250,
		DeliveryDays: 7,
	})
	if !errors.Is(err, domain.ErrProjectNotOpen) {
		t.Fatalf("expected ErrProjectNotOpen, got %v", err)
	}
}

func TestSubmitRejectsOwnProject(t *testing.T) {
	f := newFixture(t)
	project := f.seedProject(t, projectdomain.StatusOpen)

	ctx := authctx.WithActor(context.Background(), authctx.Actor{
		UserID: f.clientID,
		Role:   identitydomain.RoleFreelancer,
	})
	_, err := f.svc.Submit(ctx, domain.SubmitBidRequest{
		ProjectID:    project.ID.String(),
		Amount:       250,
		DeliveryDays: 7,
	})
	if !errors.Is(err, domain.ErrOwnProject) {
		t.Fatalf("expected ErrOwnProject, got %v", err)
	}
}

func TestWithdrawOnlyWhileOpen(t *testing.T) {
	f := newFixture(t)
	project := f.seedProject(t, projectdomain.StatusOpen)

	bid, err := f.svc.Submit(f.freelancerCtx(), domain.SubmitBidRequest{
		ProjectID:    project.ID.String(),
		Amount:       250,
		DeliveryDays: 7,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Shortlisted bids are locked into the pipeline.
	if err := f.db.Model(&domain.Bid{}).Where("id = ?", bid.ID).
		Update("status", domain.StatusShortlisted).Error; err != nil {
		t.Fatalf("failed to update bid: %v", err)
	}
	if err := f.svc.Withdraw(f.freelancerCtx(), bid.ID.String()); !errors.Is(err, domain.ErrNotWithdrawable) {
		t.Fatalf("expected ErrNotWithdrawable, got %v", err)
	}

	if err := f.db.Model(&domain.Bid{}).Where("id = ?", bid.ID).
		Update("status", domain.StatusViewed).Error; err != nil {
		t.Fatalf("failed to update bid: %v", err)
	}
	if err := f.svc.Withdraw(f.freelancerCtx(), bid.ID.String()); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}

	if _, err := f.svc.Get(f.freelancerCtx(), bid.ID.String()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after withdraw, got %v", err)
	}
}

func TestAcceptedForProjectVisibility(t *testing.T) {
	f := newFixture(t)
	project := f.seedProject(t, projectdomain.StatusOpen)

	bid, err := f.svc.Submit(f.freelancerCtx(), domain.SubmitBidRequest{
		ProjectID:    project.ID.String(),
		Amount:       250,
		DeliveryDays: 7,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Simulate a hire.
	if err := f.db.Model(&domain.Bid{}).Where("id = ?", bid.ID).
		Update("status", domain.StatusAccepted).Error; err != nil {
		t.Fatalf("failed to update bid: %v", err)
	}
	if err := f.db.Model(&projectdomain.Project{}).Where("id = ?", project.ID).
		Updates(map[string]any{
			"freelancer_id": f.freelancerID,
			"status":        projectdomain.StatusInProgress,
		}).Error; err != nil {
		t.Fatalf("failed to update project: %v", err)
	}

	got, err := f.svc.AcceptedForProject(f.clientCtx(), project.ID.String())
	if err != nil {
		t.Fatalf("accepted lookup failed: %v", err)
	}
	if got.ID != bid.ID {
		t.Fatalf("expected bid %s, got %s", bid.ID, got.ID)
	}

	outsider := authctx.WithActor(context.Background(), authctx.Actor{
		UserID: f.genID.Generate(),
		Role:   identitydomain.RoleFreelancer,
	})
	if _, err := f.svc.AcceptedForProject(outsider, project.ID.String()); !errors.Is(err, domain.ErrInvalidActor) {
		t.Fatalf("expected ErrInvalidActor, got %v", err)
	}
}
