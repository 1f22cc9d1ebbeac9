package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/authctx"
	identitydomain "github.com/gigbridge/gigbridge/internal/identity/domain"
	"github.com/gigbridge/gigbridge/internal/notification/domain"
	"github.com/gigbridge/gigbridge/internal/notification/livefeed"
	"github.com/gigbridge/gigbridge/internal/providers/email"
	"github.com/gigbridge/gigbridge/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Users identitydomain.Repository
	Hub   *livefeed.Hub
	Email email.Provider
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	users identitydomain.Repository
	hub   *livefeed.Hub
	email email.Provider
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("notification.service"),
		genID: p.GenID,
		repo:  p.Repo,
		users: p.Users,
		hub:   p.Hub,
		email: p.Email,
	}
}

func (s *Service) Dispatch(ctx context.Context, req domain.DispatchRequest) error {
	if req.RecipientID == 0 {
		return domain.ErrInvalidRecipient
	}

	notification := domain.Notification{
		ID:          s.genID.Generate(),
		RecipientID: req.RecipientID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Data:        datatypes.JSONMap(req.Data),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &notification); err != nil {
		s.log.Warn("failed to persist notification",
			zap.String("recipient_id", req.RecipientID.String()),
			zap.String("type", string(req.Type)),
			zap.Error(err))
		return err
	}

	s.hub.Publish(req.RecipientID, livefeed.Event{
		ID:        notification.ID.String(),
		Type:      string(notification.Type),
		Title:     notification.Title,
		Message:   notification.Message,
		Data:      req.Data,
		CreatedAt: notification.CreatedAt,
	})

	if req.EmailCopy {
		s.sendEmailCopy(ctx, notification)
	}
	return nil
}

func (s *Service) sendEmailCopy(ctx context.Context, notification domain.Notification) {
	user, err := s.users.FindByID(ctx, s.db, notification.RecipientID)
	if err != nil || user == nil {
		s.log.Warn("email copy skipped, recipient lookup failed",
			zap.String("recipient_id", notification.RecipientID.String()),
			zap.Error(err))
		return
	}
	msg := email.Message{
		To:      user.Email,
		Subject: notification.Title,
		Body:    notification.Message,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.log.Warn("email copy failed", zap.String("to", user.Email), zap.Error(err))
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return domain.ListResponse{}, domain.ErrInvalidActor
	}

	limit := req.PageSize
	if limit <= 0 {
		limit = 20
	}
	items, err := s.repo.ListByRecipient(ctx, s.db, actor.UserID, req.UnreadOnly, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  limit,
	})
	if err != nil {
		return domain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, limit, func(n *domain.Notification) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: n.ID.String()})
		return token
	})
	if len(items) > limit {
		items = items[:limit]
	}

	unread, err := s.repo.CountUnread(ctx, s.db, actor.UserID)
	if err != nil {
		return domain.ListResponse{}, err
	}

	notifications := make([]domain.Notification, 0, len(items))
	for _, item := range items {
		notifications = append(notifications, *item)
	}
	return domain.ListResponse{
		Notifications: notifications,
		NextPageToken: pageInfo.NextPageToken,
		HasMore:       pageInfo.HasMore,
		UnreadCount:   unread,
	}, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return domain.ErrInvalidActor
	}
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.ErrInvalidID
	}

	affected, err := s.repo.MarkRead(ctx, s.db, actor.UserID, parsed)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context) error {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return domain.ErrInvalidActor
	}
	return s.repo.MarkAllRead(ctx, s.db, actor.UserID)
}
