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
	"github.com/gigbridge/gigbridge/internal/support/domain"
	"github.com/google/uuid"
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
	Notifier notificationdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	notifier notificationdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("support.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		notifier: p.Notifier,
	}
}

func (s *Service) Open(ctx context.Context, req domain.OpenTicketRequest) (domain.Ticket, error) {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return domain.Ticket{}, domain.ErrInvalidActor
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return domain.Ticket{}, domain.ErrInvalidSubject
	}

	now := time.Now().UTC()
	ticket := domain.Ticket{
		ID:        s.genID.Generate(),
		Reference: uuid.NewString(),
		OpenerID:  actor.UserID,
		Subject:   subject,
		Body:      req.Body,
		Status:    domain.StatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, &ticket); err != nil {
		return domain.Ticket{}, err
	}

	s.log.Info("support ticket opened",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("reference", ticket.Reference))
	return ticket, nil
}

func (s *Service) ListMine(ctx context.Context) ([]domain.Ticket, error) {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidActor
	}
	items, err := s.repo.ListByOpener(ctx, s.db, actor.UserID)
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) List(ctx context.Context, status string) ([]domain.Ticket, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx, s.db, domain.Status(strings.TrimSpace(status)))
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) SetInReview(ctx context.Context, id string) (domain.Ticket, error) {
	return s.transition(ctx, id, domain.StatusInReview, "")
}

func (s *Service) Resolve(ctx context.Context, id, resolution string) (domain.Ticket, error) {
	ticket, err := s.transition(ctx, id, domain.StatusResolved, resolution)
	if err != nil {
		return domain.Ticket{}, err
	}

	if err := s.notifier.Dispatch(ctx, notificationdomain.DispatchRequest{
		RecipientID: ticket.OpenerID,
		Type:        notificationdomain.TypeTicketResolved,
		Title:       "Support ticket resolved",
		Message:     fmt.Sprintf("Ticket %s was resolved", ticket.Reference),
		Data:        map[string]any{"ticket_id": ticket.ID.String()},
		EmailCopy:   true,
	}); err != nil {
		s.log.Warn("ticket resolution notification failed", zap.Error(err))
	}
	return ticket, nil
}

func (s *Service) Close(ctx context.Context, id string) (domain.Ticket, error) {
	return s.transition(ctx, id, domain.StatusClosed, "")
}

func (s *Service) transition(ctx context.Context, id string, target domain.Status, resolution string) (domain.Ticket, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return domain.Ticket{}, err
	}
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Ticket{}, domain.ErrInvalidID
	}

	ticket, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Ticket{}, err
	}
	if ticket == nil {
		return domain.Ticket{}, domain.ErrNotFound
	}
	if !domain.CanTransition(ticket.Status, target) {
		return domain.Ticket{}, domain.ErrInvalidTransition
	}

	ticket.Status = target
	if resolution != "" {
		ticket.Resolution = resolution
	}
	if err := s.repo.Update(ctx, s.db, ticket); err != nil {
		return domain.Ticket{}, err
	}
	return *ticket, nil
}

func (s *Service) requireAdmin(ctx context.Context) error {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok || actor.Role != identitydomain.RoleAdmin {
		return domain.ErrInvalidActor
	}
	return nil
}

func collect(items []*domain.Ticket) []domain.Ticket {
	tickets := make([]domain.Ticket, 0, len(items))
	for _, item := range items {
		tickets = append(tickets, *item)
	}
	return tickets
}
