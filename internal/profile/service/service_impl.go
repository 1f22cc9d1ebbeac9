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
	"github.com/gigbridge/gigbridge/internal/profile/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Repo     domain.Repository
	Notifier notificationdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     domain.Repository
	notifier notificationdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("profile.service"),
		repo:     p.Repo,
		notifier: p.Notifier,
	}
}

func (s *Service) Upsert(ctx context.Context, req domain.UpsertProfileRequest) (domain.Profile, error) {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return domain.Profile{}, domain.ErrInvalidActor
	}

	current, err := s.repo.FindByUserID(ctx, s.db, actor.UserID)
	if err != nil {
		return domain.Profile{}, err
	}

	now := time.Now().UTC()
	profile := domain.Profile{
		UserID:     actor.UserID,
		Headline:   strings.TrimSpace(req.Headline),
		Bio:        req.Bio,
		Skills:     datatypes.JSONMap(req.Skills),
		HourlyRate: req.HourlyRate,
		Location:   strings.TrimSpace(req.Location),
		AvatarURL:  strings.TrimSpace(req.AvatarURL),
		UpdatedAt:  now,
	}
	if current != nil {
		profile.CreatedAt = current.CreatedAt
		profile.Hidden = current.Hidden
		profile.RatingAvg = current.RatingAvg
		profile.RatingCount = current.RatingCount
	} else {
		profile.CreatedAt = now
	}
	if req.Hidden != nil {
		profile.Hidden = *req.Hidden
	}

	if err := s.repo.Upsert(ctx, s.db, &profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func (s *Service) GetByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return domain.Profile{}, domain.ErrInvalidActor
	}
	parsed, err := snowflake.ParseString(strings.TrimSpace(userID))
	if err != nil || parsed == 0 {
		return domain.Profile{}, domain.ErrInvalidUserID
	}

	profile, err := s.repo.FindByUserID(ctx, s.db, parsed)
	if err != nil {
		return domain.Profile{}, err
	}
	if profile == nil {
		return domain.Profile{}, domain.ErrNotFound
	}

	owner := actor.UserID == parsed
	if profile.Hidden && !owner && actor.Role != identitydomain.RoleAdmin {
		return domain.Profile{}, domain.ErrNotFound
	}

	if !owner {
		if err := s.notifier.Dispatch(ctx, notificationdomain.DispatchRequest{
			RecipientID: parsed,
			Type:        notificationdomain.TypeProfileView,
			Title:       "Your profile was viewed",
			Message:     fmt.Sprintf("A %s viewed your profile", actor.Role),
			Data:        map[string]any{"viewer_id": actor.UserID.String()},
		}); err != nil {
			s.log.Warn("profile view notification failed", zap.Error(err))
		}
	}

	return *profile, nil
}

func (s *Service) ApplyRating(ctx context.Context, userID string, avg float64, count int) error {
	parsed, err := snowflake.ParseString(strings.TrimSpace(userID))
	if err != nil || parsed == 0 {
		return domain.ErrInvalidUserID
	}
	return s.repo.UpdateRating(ctx, s.db, parsed, avg, count)
}
