package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/authctx"
	identitydomain "github.com/gigbridge/gigbridge/internal/identity/domain"
	notificationdomain "github.com/gigbridge/gigbridge/internal/notification/domain"
	profiledomain "github.com/gigbridge/gigbridge/internal/profile/domain"
	projectdomain "github.com/gigbridge/gigbridge/internal/project/domain"
	"github.com/gigbridge/gigbridge/internal/review/domain"
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
	Profiles profiledomain.Service
	Notifier notificationdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	projects projectdomain.Repository
	profiles profiledomain.Service
	notifier notificationdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("review.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		projects: p.Projects,
		profiles: p.Profiles,
		notifier: p.Notifier,
	}
}

func (s *Service) Submit(ctx context.Context, req domain.SubmitReviewRequest) (domain.Review, error) {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return domain.Review{}, domain.ErrInvalidActor
	}
	projectID, err := snowflake.ParseString(strings.TrimSpace(req.ProjectID))
	if err != nil || projectID == 0 {
		return domain.Review{}, domain.ErrInvalidID
	}
	if req.Rating < 1 || req.Rating > 5 {
		return domain.Review{}, domain.ErrInvalidRating
	}

	project, err := s.projects.FindByID(ctx, s.db, projectID)
	if err != nil {
		return domain.Review{}, err
	}
	if project == nil {
		return domain.Review{}, domain.ErrProjectNotFound
	}
	if project.Status != projectdomain.StatusCompleted {
		return domain.Review{}, domain.ErrProjectNotCompleted
	}

	// The client reviews the assigned freelancer and vice versa.
	var revieweeID snowflake.ID
	switch {
	case actor.UserID == project.ClientID && project.FreelancerID != nil:
		revieweeID = *project.FreelancerID
	case project.FreelancerID != nil && actor.UserID == *project.FreelancerID:
		revieweeID = project.ClientID
	default:
		return domain.Review{}, domain.ErrNotParticipant
	}

	now := time.Now().UTC()
	review := domain.Review{
		ID:         s.genID.Generate(),
		ProjectID:  projectID,
		ReviewerID: actor.UserID,
		RevieweeID: revieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Status:     domain.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, s.db, &review); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Review{}, domain.ErrDuplicateReview
		}
		return domain.Review{}, err
	}
	return review, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Review, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(userID))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}
	items, err := s.repo.ListByReviewee(ctx, s.db, parsed, domain.StatusApproved)
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) ListPending(ctx context.Context) ([]domain.Review, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByStatus(ctx, s.db, domain.StatusPending)
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) Approve(ctx context.Context, id string) (domain.Review, error) {
	review, err := s.moderate(ctx, id, domain.StatusApproved)
	if err != nil {
		return domain.Review{}, err
	}

	avg, count, err := s.repo.AggregateApproved(ctx, s.db, review.RevieweeID)
	if err != nil {
		s.log.Warn("failed to aggregate ratings", zap.Error(err))
	} else if err := s.profiles.ApplyRating(ctx, review.RevieweeID.String(), avg, int(count)); err != nil {
		s.log.Warn("failed to apply profile rating", zap.Error(err))
	}

	if err := s.notifier.Dispatch(ctx, notificationdomain.DispatchRequest{
		RecipientID: review.RevieweeID,
		Type:        notificationdomain.TypeNewReview,
		Title:       "New review published",
		Message:     fmt.Sprintf("You received a %d-star review", review.Rating),
		Data:        map[string]any{"review_id": review.ID.String()},
	}); err != nil {
		s.log.Warn("review notification failed", zap.Error(err))
	}
	return review, nil
}

func (s *Service) Reject(ctx context.Context, id string) (domain.Review, error) {
	return s.moderate(ctx, id, domain.StatusRejected)
}

func (s *Service) moderate(ctx context.Context, id string, target domain.Status) (domain.Review, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return domain.Review{}, err
	}
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Review{}, domain.ErrInvalidID
	}

	review, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Review{}, err
	}
	if review == nil {
		return domain.Review{}, domain.ErrNotFound
	}
	if review.Status != domain.StatusPending {
		return domain.Review{}, domain.ErrNotModeratable
	}

	if err := s.repo.UpdateStatus(ctx, s.db, review.ID, target); err != nil {
		return domain.Review{}, err
	}
	review.Status = target
	return *review, nil
}

func (s *Service) requireAdmin(ctx context.Context) error {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok || actor.Role != identitydomain.RoleAdmin {
		return domain.ErrInvalidActor
	}
	return nil
}

func collect(items []*domain.Review) []domain.Review {
	reviews := make([]domain.Review, 0, len(items))
	for _, item := range items {
		reviews = append(reviews, *item)
	}
	return reviews
}
