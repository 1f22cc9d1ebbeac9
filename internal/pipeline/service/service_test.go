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
	notificationdomain "github.com/gigbridge/gigbridge/internal/notification/domain"
	"github.com/gigbridge/gigbridge/internal/pipeline/domain"
	"github.com/gigbridge/gigbridge/internal/pipeline/repository"
	projectdomain "github.com/gigbridge/gigbridge/internal/project/domain"
	projectrepository "github.com/gigbridge/gigbridge/internal/project/repository"
	"github.com/gigbridge/gigbridge/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeNotifier struct {
	dispatched []notificationdomain.DispatchRequest
	err        error
}

func (f *fakeNotifier) Dispatch(ctx context.Context, req notificationdomain.DispatchRequest) error {
	if f.err != nil {
		return f.err
	}
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
	bids     biddomain.Repository
	projects projectdomain.Repository
	notifier *fakeNotifier
	genID    *snowflake.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	err = dbConn.AutoMigrate(
		&projectdomain.Project{},
		&biddomain.Bid{},
		&domain.Shortlist{},
		&domain.Interview{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	notifier := &fakeNotifier{}
	bids := bidrepository.Provide()
	projects := projectrepository.Provide()
	svc := New(Params{
		DB:         dbConn,
		Log:        zap.NewNop(),
		GenID:      node,
		Shortlists: repository.ProvideShortlists(),
		Interviews: repository.ProvideInterviews(),
		Bids:       bids,
		Projects:   projects,
		Notifier:   notifier,
	})

	return &fixture{
		db:       dbConn,
		svc:      svc,
		bids:     bids,
		projects: projects,
		notifier: notifier,
		genID:    node,
	}
}

func (f *fixture) clientCtx(clientID snowflake.ID) context.Context {
	return authctx.WithActor(context.Background(), authctx.Actor{
		UserID: clientID,
		Role:   identitydomain.RoleClient,
	})
}

func (f *fixture) seedProject(t *testing.T, clientID snowflake.ID) *projectdomain.Project {
	t.Helper()
	now := time.Now().UTC()
	project := &projectdomain.Project{
		ID:        f.genID.Generate(),
		ClientID:  clientID,
		Title:     "Build a landing page",
		Slug:      "build-a-landing-page-" + f.genID.Generate().String(),
		Status:    projectdomain.StatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := f.projects.Insert(context.Background(), f.db, project); err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return project
}

func (f *fixture) seedBid(t *testing.T, projectID, freelancerID snowflake.ID, status biddomain.Status) *biddomain.Bid {
	t.Helper()
	now := time.Now().UTC()
	bid := &biddomain.Bid{
		ID:           f.genID.Generate(),
		ProjectID:    projectID,
		FreelancerID: freelancerID,
		Amount:       500,
		DeliveryDays: 7,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := f.bids.Insert(context.Background(), f.db, bid); err != nil {
		t.Fatalf("failed to seed bid: %v", err)
	}
	return bid
}

func TestMarkViewed(t *testing.T) {
	f := newFixture(t)
	clientID := f.genID.Generate()
	project := f.seedProject(t, clientID)
	bid := f.seedBid(t, project.ID, f.genID.Generate(), biddomain.StatusPending)

	updated, err := f.svc.MarkViewed(f.clientCtx(clientID), bid.ID.String())
	if err != nil {
		t.Fatalf("mark viewed: %v", err)
	}
	if updated.Status != biddomain.StatusViewed {
		t.Fatalf("expected viewed, got %s", updated.Status)
	}
}

func TestMarkViewedRejectsNonOwner(t *testing.T) {
	f := newFixture(t)
	project := f.seedProject(t, f.genID.Generate())
	bid := f.seedBid(t, project.ID, f.genID.Generate(), biddomain.StatusPending)

	_, err := f.svc.MarkViewed(f.clientCtx(f.genID.Generate()), bid.ID.String())
	if !errors.Is(err, domain.ErrNotProjectOwner) {
		t.Fatalf("expected ErrNotProjectOwner, got %v", err)
	}
}

func TestShortlistUpsertIdempotent(t *testing.T) {
	f := newFixture(t)
	clientID := f.genID.Generate()
	project := f.seedProject(t, clientID)
	bid := f.seedBid(t, project.ID, f.genID.Generate(), biddomain.StatusViewed)
	ctx := f.clientCtx(clientID)

	first, err := f.svc.Shortlist(ctx, domain.ShortlistRequest{BidID: bid.ID.String(), Notes: "strong portfolio"})
	if err != nil {
		t.Fatalf("shortlist: %v", err)
	}

	second, err := f.svc.Shortlist(ctx, domain.ShortlistRequest{BidID: bid.ID.String(), Notes: "updated notes"})
	if err != nil {
		t.Fatalf("second shortlist: %v", err)
	}
	if second.Notes != "updated notes" {
		t.Fatalf("expected notes updated, got %q", second.Notes)
	}
	if second.ID != first.ID {
		t.Fatalf("expected upsert to reuse row, got %s and %s", first.ID, second.ID)
	}

	var count int64
	if err := f.db.Model(&domain.Shortlist{}).Count(&count).Error; err != nil {
		t.Fatalf("count shortlists: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 shortlist row, got %d", count)
	}

	stored, err := f.bids.FindByID(context.Background(), f.db, bid.ID)
	if err != nil || stored == nil {
		t.Fatalf("find bid: %v", err)
	}
	if stored.Status != biddomain.StatusShortlisted {
		t.Fatalf("expected bid shortlisted, got %s", stored.Status)
	}
}

func TestScheduleInterviewRequiresTime(t *testing.T) {
	f := newFixture(t)
	clientID := f.genID.Generate()
	project := f.seedProject(t, clientID)

	_, err := f.svc.ScheduleInterview(f.clientCtx(clientID), domain.ScheduleInterviewRequest{
		ProjectID:    project.ID.String(),
		FreelancerID: f.genID.Generate().String(),
	})
	if !errors.Is(err, domain.ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule, got %v", err)
	}
}

func TestHireAssignsAndRejectsLosers(t *testing.T) {
	f := newFixture(t)
	clientID := f.genID.Generate()
	project := f.seedProject(t, clientID)
	winnerID := f.genID.Generate()
	winnerBid := f.seedBid(t, project.ID, winnerID, biddomain.StatusShortlisted)
	loserBid := f.seedBid(t, project.ID, f.genID.Generate(), biddomain.StatusPending)
	ctx := f.clientCtx(clientID)

	if _, err := f.svc.Shortlist(ctx, domain.ShortlistRequest{BidID: winnerBid.ID.String()}); err != nil {
		t.Fatalf("shortlist: %v", err)
	}
	f.notifier.dispatched = nil

	hired, err := f.svc.Hire(ctx, domain.HireRequest{
		ProjectID:    project.ID.String(),
		FreelancerID: winnerID.String(),
		BidID:        winnerBid.ID.String(),
	})
	if err != nil {
		t.Fatalf("hire: %v", err)
	}
	if hired.Status != projectdomain.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", hired.Status)
	}
	if hired.FreelancerID == nil || *hired.FreelancerID != winnerID {
		t.Fatalf("expected freelancer assigned")
	}

	winner, _ := f.bids.FindByID(context.Background(), f.db, winnerBid.ID)
	if winner.Status != biddomain.StatusAccepted {
		t.Fatalf("expected winner accepted, got %s", winner.Status)
	}
	loser, _ := f.bids.FindByID(context.Background(), f.db, loserBid.ID)
	if loser.Status != biddomain.StatusRejected {
		t.Fatalf("expected loser rejected, got %s", loser.Status)
	}

	var hiredCount int64
	f.db.Model(&domain.Shortlist{}).Where("status = ?", domain.ShortlistStatusHired).Count(&hiredCount)
	if hiredCount != 1 {
		t.Fatalf("expected 1 hired shortlist entry, got %d", hiredCount)
	}

	// One rejection notice for the loser plus the hire notice.
	if len(f.notifier.dispatched) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(f.notifier.dispatched))
	}
}

func TestSecondHireLosesRace(t *testing.T) {
	f := newFixture(t)
	clientID := f.genID.Generate()
	project := f.seedProject(t, clientID)
	firstID := f.genID.Generate()
	secondID := f.genID.Generate()
	f.seedBid(t, project.ID, firstID, biddomain.StatusViewed)
	f.seedBid(t, project.ID, secondID, biddomain.StatusViewed)
	ctx := f.clientCtx(clientID)

	if _, err := f.svc.Hire(ctx, domain.HireRequest{
		ProjectID:    project.ID.String(),
		FreelancerID: firstID.String(),
	}); err != nil {
		t.Fatalf("first hire: %v", err)
	}

	_, err := f.svc.Hire(ctx, domain.HireRequest{
		ProjectID:    project.ID.String(),
		FreelancerID: secondID.String(),
	})
	if !errors.Is(err, domain.ErrProjectNotOpen) {
		t.Fatalf("expected ErrProjectNotOpen, got %v", err)
	}
}

func TestHireRollsBackOnBidMismatch(t *testing.T) {
	f := newFixture(t)
	clientID := f.genID.Generate()
	project := f.seedProject(t, clientID)
	other := f.seedProject(t, clientID)
	freelancerID := f.genID.Generate()
	foreignBid := f.seedBid(t, other.ID, freelancerID, biddomain.StatusPending)

	_, err := f.svc.Hire(f.clientCtx(clientID), domain.HireRequest{
		ProjectID:    project.ID.String(),
		FreelancerID: freelancerID.String(),
		BidID:        foreignBid.ID.String(),
	})
	if !errors.Is(err, domain.ErrBidMismatch) {
		t.Fatalf("expected ErrBidMismatch, got %v", err)
	}

	stored, _ := f.projects.FindByID(context.Background(), f.db, project.ID)
	if stored.Status != projectdomain.StatusOpen {
		t.Fatalf("expected project still open, got %s", stored.Status)
	}
	if stored.FreelancerID != nil {
		t.Fatal("expected no freelancer assigned after rollback")
	}
}

func TestHireSurvivesNotifierFailure(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("smtp down")
	clientID := f.genID.Generate()
	project := f.seedProject(t, clientID)
	freelancerID := f.genID.Generate()
	f.seedBid(t, project.ID, freelancerID, biddomain.StatusViewed)

	hired, err := f.svc.Hire(f.clientCtx(clientID), domain.HireRequest{
		ProjectID:    project.ID.String(),
		FreelancerID: freelancerID.String(),
	})
	if err != nil {
		t.Fatalf("hire should not fail on notification error: %v", err)
	}
	if hired.Status != projectdomain.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", hired.Status)
	}
}

func TestRejectCandidate(t *testing.T) {
	f := newFixture(t)
	clientID := f.genID.Generate()
	project := f.seedProject(t, clientID)
	freelancerID := f.genID.Generate()
	bid := f.seedBid(t, project.ID, freelancerID, biddomain.StatusViewed)
	ctx := f.clientCtx(clientID)

	err := f.svc.Reject(ctx, domain.RejectRequest{
		ProjectID:    project.ID.String(),
		FreelancerID: freelancerID.String(),
		BidID:        bid.ID.String(),
	})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}

	stored, _ := f.bids.FindByID(context.Background(), f.db, bid.ID)
	if stored.Status != biddomain.StatusRejected {
		t.Fatalf("expected rejected, got %s", stored.Status)
	}

	project2, _ := f.projects.FindByID(context.Background(), f.db, project.ID)
	if project2.Status != projectdomain.StatusOpen {
		t.Fatalf("reject must not change project status, got %s", project2.Status)
	}
}

func TestCompletedProjectIsTerminal(t *testing.T) {
	f := newFixture(t)
	clientID := f.genID.Generate()
	project := f.seedProject(t, clientID)
	freelancerID := f.genID.Generate()
	f.seedBid(t, project.ID, freelancerID, biddomain.StatusViewed)
	ctx := f.clientCtx(clientID)

	if _, err := f.svc.Hire(ctx, domain.HireRequest{
		ProjectID:    project.ID.String(),
		FreelancerID: freelancerID.String(),
	}); err != nil {
		t.Fatalf("hire: %v", err)
	}
	if _, err := f.svc.Complete(ctx, project.ID.String()); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if _, err := f.svc.Cancel(ctx, project.ID.String()); !errors.Is(err, domain.ErrProjectTransition) {
		t.Fatalf("expected ErrProjectTransition after completion, got %v", err)
	}
}
