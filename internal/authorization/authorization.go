// Package authorization enforces role-based access with casbin.
package authorization

import (
	"context"
	_ "embed"
	"errors"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"github.com/gigbridge/gigbridge/internal/authctx"
	identitydomain "github.com/gigbridge/gigbridge/internal/identity/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

// Objects guarded by the enforcer.
const (
	ObjectProject      = "project"
	ObjectBid          = "bid"
	ObjectPipeline     = "pipeline"
	ObjectInterview    = "interview"
	ObjectMessage      = "message"
	ObjectReview       = "review"
	ObjectTicket       = "ticket"
	ObjectProfile      = "profile"
	ObjectNotification = "notification"
	ObjectMirror       = "mirror"
	ObjectUser         = "user"
)

// Actions guarded by the enforcer.
const (
	ActionProjectCreate = "project.create"
	ActionProjectManage = "project.manage"

	ActionBidCreate   = "bid.create"
	ActionBidWithdraw = "bid.withdraw"

	ActionPipelineAct = "pipeline.act"

	ActionInterviewSchedule = "interview.schedule"

	ActionMessageSend = "message.send"

	ActionReviewCreate   = "review.create"
	ActionReviewModerate = "review.moderate"

	ActionTicketCreate = "ticket.create"
	ActionTicketManage = "ticket.manage"

	ActionMirrorSync = "mirror.sync"

	ActionUserManage = "user.manage"
)

var (
	ErrInvalidActor = errors.New("invalid_actor")
	ErrDenied       = errors.New("authorization_denied")
)

type Service interface {
	// Authorize checks the actor in ctx against the (object, action) pair.
	Authorize(ctx context.Context, object, action string) error
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

var Module = fx.Module("authorization",
	fx.Provide(NewEnforcer),
	fx.Provide(NewService),
)

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, object, action string) error {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return ErrInvalidActor
	}
	role := strings.TrimSpace(actor.Role)
	if role == "" {
		return ErrInvalidActor
	}

	allowed, err := s.enforcer.Enforce(role, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("role", role),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrDenied
	}
	return nil
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		{identitydomain.RoleClient, ObjectProject, ActionProjectCreate},
		{identitydomain.RoleClient, ObjectProject, ActionProjectManage},
		{identitydomain.RoleClient, ObjectPipeline, ActionPipelineAct},
		{identitydomain.RoleClient, ObjectInterview, ActionInterviewSchedule},
		{identitydomain.RoleClient, ObjectMessage, ActionMessageSend},
		{identitydomain.RoleClient, ObjectReview, ActionReviewCreate},
		{identitydomain.RoleClient, ObjectTicket, ActionTicketCreate},

		{identitydomain.RoleFreelancer, ObjectBid, ActionBidCreate},
		{identitydomain.RoleFreelancer, ObjectBid, ActionBidWithdraw},
		{identitydomain.RoleFreelancer, ObjectMessage, ActionMessageSend},
		{identitydomain.RoleFreelancer, ObjectReview, ActionReviewCreate},
		{identitydomain.RoleFreelancer, ObjectTicket, ActionTicketCreate},

		{identitydomain.RoleAdmin, ObjectReview, ActionReviewModerate},
		{identitydomain.RoleAdmin, ObjectTicket, ActionTicketManage},
		{identitydomain.RoleAdmin, ObjectUser, ActionUserManage},
		{identitydomain.RoleAdmin, ObjectMirror, ActionMirrorSync},
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	return nil
}
