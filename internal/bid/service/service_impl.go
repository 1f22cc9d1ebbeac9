package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/authctx"
	"github.com/gigbridge/gigbridge/internal/bid/domain"
	identitydomain "github.com/gigbridge/gigbridge/internal/identity/domain"
	notificationdomain "github.com/gigbridge/gigbridge/internal/notification/domain"
	projectdomain "github.com/gigbridge/gigbridge/internal/project/domain"
	"github.com/gigbridge/gigbridge/internal/ratelimit"
	"github.com/gigbridge/gigbridge/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Projects projectdomain.Repository
	Limiter  *ratelimit.BidSubmitLimiter `optional:"true"`
	Notifier notificationdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	projects projectdomain.Repository
	limiter  *ratelimit.BidSubmitLimiter
	notifier notificationdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("bid.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		projects: p.Projects,
		limiter:  p.Limiter,
		notifier: p.Notifier,
	}
}

func (s *Service) Submit(ctx context.Context, req domain.SubmitBidRequest) (domain.Bid, error) {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return domain.Bid{}, domain.ErrInvalidActor
	}
	if actor.Role != identitydomain.RoleFreelancer {
		return domain.Bid{}, domain.ErrInvalidActor
	}

	projectID, err := snowflake.ParseString(strings.TrimSpace(req.ProjectID))
	if err != nil || projectID == 0 {
		return domain.Bid{}, domain.ErrInvalidID
	}
	if req.Amount <= 0 {
		return domain.Bid{}, domain.ErrInvalidAmount
	}
	if req.DeliveryDays <= 0 {
		return domain.Bid{}, domain.ErrInvalidDelivery
	}

	project, err := s.projects.FindByID(ctx, s.db, projectID)
	if err != nil {
		return domain.Bid{}, err
	}
	if project == nil {
		return domain.Bid{}, domain.ErrProjectNotFound
	}
	if project.ClientID == actor.UserID {
		return domain.Bid{}, domain.ErrOwnProject
	}
	if project.Status != projectdomain.StatusOpen {
		return domain.Bid{}, domain.ErrProjectNotOpen
	}

	if s.limiter.Enabled() {
		result, err := s.limiter.Allow(ctx, actor.UserID)
		if err != nil {
			// Limiter outage must not block bidding.
			s.log.Warn("bid rate limiter unavailable", zap.Error(err))
		} else if !result.Allowed {
			return domain.Bid{}, domain.ErrRateLimited
		}
	}

	now := time.Now().UTC()
	bid := domain.Bid{
		ID:           s.genID.Generate(),
		ProjectID:    projectID,
		FreelancerID: actor.UserID,
		Amount:       req.Amount,
		DeliveryDays: req.DeliveryDays,
		Proposal:     req.Proposal,
		Status:       domain.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, s.db, &bid); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Bid{}, domain.ErrDuplicateBid
		}
		return domain.Bid{}, err
	}

	if err := s.notifier.Dispatch(ctx, notificationdomain.DispatchRequest{
		RecipientID: project.ClientID,
		Type:        notificationdomain.TypeNewBid,
		Title:       "New bid received",
		Message:     fmt.Sprintf("A freelancer bid %.2f on %q", bid.Amount, project.Title),
		Data: map[string]any{
			"project_id": project.ID.String(),
			"bid_id":     bid.ID.String(),
		},
	}); err != nil {
		s.log.Warn("new bid notification failed", zap.Error(err))
	}

	s.log.Info("bid submitted",
		zap.String("bid_id", bid.ID.String()),
		zap.String("project_id", project.ID.String()),
		zap.String("freelancer_id", actor.UserID.String()))
	return bid, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Bid, error) {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return domain.Bid{}, domain.ErrInvalidActor
	}
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Bid{}, domain.ErrInvalidID
	}

	bid, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Bid{}, err
	}
	if bid == nil {
		return domain.Bid{}, domain.ErrNotFound
	}

	if actor.Role == identitydomain.RoleAdmin || bid.FreelancerID == actor.UserID {
		return *bid, nil
	}
	project, err := s.projects.FindByID(ctx, s.db, bid.ProjectID)
	if err != nil {
		return domain.Bid{}, err
	}
	if project == nil || project.ClientID != actor.UserID {
		return domain.Bid{}, domain.ErrNotFound
	}
	return *bid, nil
}

func (s *Service) ListByProject(ctx context.Context, projectID string) ([]domain.Bid, error) {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidActor
	}
	parsed, err := snowflake.ParseString(strings.TrimSpace(projectID))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}

	project, err := s.projects.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}
	if project.ClientID != actor.UserID && actor.Role != identitydomain.RoleAdmin {
		return nil, domain.ErrInvalidActor
	}

	items, err := s.repo.ListByProject(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) ListMine(ctx context.Context) ([]domain.Bid, error) {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidActor
	}
	items, err := s.repo.ListByFreelancer(ctx, s.db, actor.UserID)
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) AcceptedForProject(ctx context.Context, projectID string) (domain.Bid, error) {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return domain.Bid{}, domain.ErrInvalidActor
	}
	parsed, err := snowflake.ParseString(strings.TrimSpace(projectID))
	if err != nil || parsed == 0 {
		return domain.Bid{}, domain.ErrInvalidID
	}

	project, err := s.projects.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Bid{}, err
	}
	if project == nil {
		return domain.Bid{}, domain.ErrProjectNotFound
	}
	if project.FreelancerID == nil {
		return domain.Bid{}, domain.ErrNotFound
	}
	if actor.Role != identitydomain.RoleAdmin &&
		actor.UserID != project.ClientID &&
		actor.UserID != *project.FreelancerID {
		return domain.Bid{}, domain.ErrInvalidActor
	}

	bid, err := s.repo.FindByProjectAndFreelancer(ctx, s.db, parsed, *project.FreelancerID)
	if err != nil {
		return domain.Bid{}, err
	}
	if bid == nil {
		return domain.Bid{}, domain.ErrNotFound
	}
	return *bid, nil
}

func (s *Service) Withdraw(ctx context.Context, id string) error {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return domain.ErrInvalidActor
	}
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.ErrInvalidID
	}

	bid, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if bid == nil {
		return domain.ErrNotFound
	}
	if bid.FreelancerID != actor.UserID {
		return domain.ErrNotBidOwner
	}
	if bid.Status != domain.StatusPending && bid.Status != domain.StatusViewed {
		return domain.ErrNotWithdrawable
	}

	return s.repo.Delete(ctx, s.db, parsed)
}

func collect(items []*domain.Bid) []domain.Bid {
	bids := make([]domain.Bid, 0, len(items))
	for _, item := range items {
		bids = append(bids, *item)
	}
	return bids
}
