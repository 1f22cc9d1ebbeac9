package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/authctx"
	biddomain "github.com/gigbridge/gigbridge/internal/bid/domain"
	"github.com/gigbridge/gigbridge/internal/message/domain"
	notificationdomain "github.com/gigbridge/gigbridge/internal/notification/domain"
	projectdomain "github.com/gigbridge/gigbridge/internal/project/domain"
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
	Bids     biddomain.Repository
	Projects projectdomain.Repository
	Notifier notificationdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	bids     biddomain.Repository
	projects projectdomain.Repository
	notifier notificationdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("message.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		bids:     p.Bids,
		projects: p.Projects,
		notifier: p.Notifier,
	}
}

// participant reports whether the user is the project's client, its assigned
// freelancer, or a freelancer with a bid on it.
func (s *Service) participant(ctx context.Context, project *projectdomain.Project, userID snowflake.ID) (bool, error) {
	if project.ClientID == userID {
		return true, nil
	}
	if project.FreelancerID != nil && *project.FreelancerID == userID {
		return true, nil
	}
	bid, err := s.bids.FindByProjectAndFreelancer(ctx, s.db, project.ID, userID)
	if err != nil {
		return false, err
	}
	return bid != nil, nil
}

func (s *Service) Send(ctx context.Context, req domain.SendMessageRequest) (domain.Message, error) {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return domain.Message{}, domain.ErrInvalidActor
	}

	projectID, err := snowflake.ParseString(strings.TrimSpace(req.ProjectID))
	if err != nil || projectID == 0 {
		return domain.Message{}, domain.ErrInvalidID
	}
	recipientID, err := snowflake.ParseString(strings.TrimSpace(req.RecipientID))
	if err != nil || recipientID == 0 || recipientID == actor.UserID {
		return domain.Message{}, domain.ErrInvalidRecipient
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return domain.Message{}, domain.ErrEmptyBody
	}

	project, err := s.projects.FindByID(ctx, s.db, projectID)
	if err != nil {
		return domain.Message{}, err
	}
	if project == nil {
		return domain.Message{}, domain.ErrProjectNotFound
	}

	// Both ends of the thread must be project participants, and one of them
	// must be the client.
	senderOK, err := s.participant(ctx, project, actor.UserID)
	if err != nil {
		return domain.Message{}, err
	}
	recipientOK, err := s.participant(ctx, project, recipientID)
	if err != nil {
		return domain.Message{}, err
	}
	if !senderOK || !recipientOK {
		return domain.Message{}, domain.ErrNotParticipant
	}
	if actor.UserID != project.ClientID && recipientID != project.ClientID {
		return domain.Message{}, domain.ErrNotParticipant
	}

	message := domain.Message{
		ID:          s.genID.Generate(),
		ProjectID:   projectID,
		SenderID:    actor.UserID,
		RecipientID: recipientID,
		Body:        body,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &message); err != nil {
		return domain.Message{}, err
	}

	if err := s.notifier.Dispatch(ctx, notificationdomain.DispatchRequest{
		RecipientID: recipientID,
		Type:        notificationdomain.TypeNewMessage,
		Title:       "New message",
		Message:     fmt.Sprintf("New message on %q", project.Title),
		Data: map[string]any{
			"project_id": project.ID.String(),
			"message_id": message.ID.String(),
			"sender_id":  actor.UserID.String(),
		},
	}); err != nil {
		s.log.Warn("message notification failed", zap.Error(err))
	}

	return message, nil
}

func (s *Service) ListThread(ctx context.Context, projectID, otherUserID string) ([]domain.Message, error) {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidActor
	}
	pid, err := snowflake.ParseString(strings.TrimSpace(projectID))
	if err != nil || pid == 0 {
		return nil, domain.ErrInvalidID
	}
	other, err := snowflake.ParseString(strings.TrimSpace(otherUserID))
	if err != nil || other == 0 {
		return nil, domain.ErrInvalidID
	}

	project, err := s.projects.FindByID(ctx, s.db, pid)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}
	ok2, err := s.participant(ctx, project, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !ok2 {
		return nil, domain.ErrNotParticipant
	}

	items, err := s.repo.ListThread(ctx, s.db, pid, actor.UserID, other)
	if err != nil {
		return nil, err
	}
	messages := make([]domain.Message, 0, len(items))
	for _, item := range items {
		messages = append(messages, *item)
	}
	return messages, nil
}

func (s *Service) MarkThreadRead(ctx context.Context, projectID, otherUserID string) error {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return domain.ErrInvalidActor
	}
	pid, err := snowflake.ParseString(strings.TrimSpace(projectID))
	if err != nil || pid == 0 {
		return domain.ErrInvalidID
	}
	other, err := snowflake.ParseString(strings.TrimSpace(otherUserID))
	if err != nil || other == 0 {
		return domain.ErrInvalidID
	}
	return s.repo.MarkThreadRead(ctx, s.db, pid, other, actor.UserID)
}
