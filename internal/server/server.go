// Package server exposes the marketplace over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gigbridge/gigbridge/internal/authorization"
	"github.com/gigbridge/gigbridge/internal/bid"
	biddomain "github.com/gigbridge/gigbridge/internal/bid/domain"
	"github.com/gigbridge/gigbridge/internal/config"
	"github.com/gigbridge/gigbridge/internal/identity"
	identitydomain "github.com/gigbridge/gigbridge/internal/identity/domain"
	"github.com/gigbridge/gigbridge/internal/identity/session"
	"github.com/gigbridge/gigbridge/internal/message"
	messagedomain "github.com/gigbridge/gigbridge/internal/message/domain"
	"github.com/gigbridge/gigbridge/internal/mirror"
	mirrordomain "github.com/gigbridge/gigbridge/internal/mirror/domain"
	"github.com/gigbridge/gigbridge/internal/notification"
	notificationdomain "github.com/gigbridge/gigbridge/internal/notification/domain"
	"github.com/gigbridge/gigbridge/internal/notification/livefeed"
	"github.com/gigbridge/gigbridge/internal/observability"
	obslogger "github.com/gigbridge/gigbridge/internal/observability/logger"
	obsmetrics "github.com/gigbridge/gigbridge/internal/observability/metrics"
	obstracing "github.com/gigbridge/gigbridge/internal/observability/tracing"
	"github.com/gigbridge/gigbridge/internal/pipeline"
	pipelinedomain "github.com/gigbridge/gigbridge/internal/pipeline/domain"
	"github.com/gigbridge/gigbridge/internal/profile"
	profiledomain "github.com/gigbridge/gigbridge/internal/profile/domain"
	"github.com/gigbridge/gigbridge/internal/project"
	projectdomain "github.com/gigbridge/gigbridge/internal/project/domain"
	"github.com/gigbridge/gigbridge/internal/providers"
	"github.com/gigbridge/gigbridge/internal/providers/pdf"
	"github.com/gigbridge/gigbridge/internal/ratelimit"
	"github.com/gigbridge/gigbridge/internal/review"
	reviewdomain "github.com/gigbridge/gigbridge/internal/review/domain"
	"github.com/gigbridge/gigbridge/internal/support"
	supportdomain "github.com/gigbridge/gigbridge/internal/support/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	authorization.Module,
	identity.Module,
	profile.Module,
	project.Module,
	bid.Module,
	pipeline.Module,
	message.Module,
	review.Module,
	support.Module,
	notification.Module,
	providers.Module,
	ratelimit.Module,
	mirror.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug: obsCfg.Debug(),
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	addr := cfg.HTTPAddr
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	sessions        *session.Manager
	identitySvc     identitydomain.Service
	authzSvc        authorization.Service
	profileSvc      profiledomain.Service
	projectSvc      projectdomain.Service
	bidSvc          biddomain.Service
	pipelineSvc     pipelinedomain.Service
	messageSvc      messagedomain.Service
	reviewSvc       reviewdomain.Service
	supportSvc      supportdomain.Service
	notificationSvc notificationdomain.Service
	mirrorSvc       mirrordomain.Service
	liveFeed        *livefeed.Hub
	pdfProvider     pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	Sessions        *session.Manager
	IdentitySvc     identitydomain.Service
	AuthzSvc        authorization.Service
	ProfileSvc      profiledomain.Service
	ProjectSvc      projectdomain.Service
	BidSvc          biddomain.Service
	PipelineSvc     pipelinedomain.Service
	MessageSvc      messagedomain.Service
	ReviewSvc       reviewdomain.Service
	SupportSvc      supportdomain.Service
	NotificationSvc notificationdomain.Service
	MirrorSvc       mirrordomain.Service `optional:"true"`
	LiveFeed        *livefeed.Hub        `optional:"true"`
	PDFProvider     pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		sessions:        p.Sessions,
		identitySvc:     p.IdentitySvc,
		authzSvc:        p.AuthzSvc,
		profileSvc:      p.ProfileSvc,
		projectSvc:      p.ProjectSvc,
		bidSvc:          p.BidSvc,
		pipelineSvc:     p.PipelineSvc,
		messageSvc:      p.MessageSvc,
		reviewSvc:       p.ReviewSvc,
		supportSvc:      p.SupportSvc,
		notificationSvc: p.NotificationSvc,
		mirrorSvc:       p.MirrorSvc,
		liveFeed:        p.LiveFeed,
		pdfProvider:     p.PDFProvider,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Profiles --------
	api.PUT("/profile", s.AuthRequired(), s.UpsertProfile)
	api.GET("/profiles/:userId", s.AuthRequired(), s.GetProfile)

	// -------- Projects --------
	// Browsing is public; everything that mutates requires a session.
	api.GET("/projects", s.ListProjects)
	api.GET("/projects/:id", s.GetProject)
	api.POST("/projects",
		s.AuthRequired(),
		s.authorize(authorization.ObjectProject, authorization.ActionProjectCreate),
		s.CreateProject)

	// -------- Bids --------
	api.POST("/bids",
		s.AuthRequired(),
		s.authorize(authorization.ObjectBid, authorization.ActionBidCreate),
		s.SubmitBid)
	api.GET("/bids/:id", s.AuthRequired(), s.GetBid)
	api.DELETE("/bids/:id",
		s.AuthRequired(),
		s.authorize(authorization.ObjectBid, authorization.ActionBidWithdraw),
		s.WithdrawBid)
	api.GET("/my/bids", s.AuthRequired(), s.ListMyBids)
	api.GET("/projects/:id/bids", s.AuthRequired(), s.ListProjectBids)

	// -------- Candidate pipeline --------
	pipe := api.Group("", s.AuthRequired(),
		s.authorize(authorization.ObjectPipeline, authorization.ActionPipelineAct))
	{
		pipe.POST("/bids/:id/viewed", s.MarkBidViewed)
		pipe.POST("/projects/:id/shortlist", s.ShortlistCandidate)
		pipe.POST("/projects/:id/hire", s.HireCandidate)
		pipe.POST("/projects/:id/reject", s.RejectCandidate)
	}

	// Closing out a project is owner lifecycle management, not candidate
	// pipeline work.
	manage := api.Group("", s.AuthRequired(),
		s.authorize(authorization.ObjectProject, authorization.ActionProjectManage))
	{
		manage.POST("/projects/:id/complete", s.CompleteProject)
		manage.POST("/projects/:id/cancel", s.CancelProject)
	}

	// -------- Interviews --------
	api.POST("/projects/:id/interviews",
		s.AuthRequired(),
		s.authorize(authorization.ObjectInterview, authorization.ActionInterviewSchedule),
		s.ScheduleInterview)
	api.GET("/projects/:id/interviews", s.AuthRequired(), s.ListInterviews)

	// -------- Agreements --------
	api.GET("/projects/:id/agreement.pdf", s.AuthRequired(), s.DownloadAgreement)

	// -------- Messages --------
	api.POST("/messages",
		s.AuthRequired(),
		s.authorize(authorization.ObjectMessage, authorization.ActionMessageSend),
		s.SendMessage)
	api.GET("/projects/:id/messages/:userId", s.AuthRequired(), s.ListThread)
	api.POST("/projects/:id/messages/:userId/read", s.AuthRequired(), s.MarkThreadRead)

	// -------- Reviews --------
	api.POST("/reviews",
		s.AuthRequired(),
		s.authorize(authorization.ObjectReview, authorization.ActionReviewCreate),
		s.SubmitReview)
	api.GET("/users/:id/reviews", s.ListUserReviews)

	// -------- Notifications --------
	api.GET("/notifications", s.AuthRequired(), s.ListNotifications)
	api.GET("/notifications/stream", s.AuthRequired(), s.StreamNotifications)
	api.POST("/notifications/:id/read", s.AuthRequired(), s.MarkNotificationRead)
	api.POST("/notifications/read-all", s.AuthRequired(), s.MarkAllNotificationsRead)

	// -------- Support tickets --------
	api.POST("/tickets",
		s.AuthRequired(),
		s.authorize(authorization.ObjectTicket, authorization.ActionTicketCreate),
		s.OpenTicket)
	api.GET("/tickets", s.AuthRequired(), s.ListMyTickets)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin")

	admin.Use(s.AuthRequired())
	admin.Use(RequireRole(identitydomain.RoleAdmin))

	users := admin.Group("", s.authorize(authorization.ObjectUser, authorization.ActionUserManage))
	{
		users.GET("/users", s.ListUsers)
		users.POST("/users/:id/suspend", s.SuspendUser)
		users.POST("/users/:id/unsuspend", s.UnsuspendUser)
	}

	reviews := admin.Group("", s.authorize(authorization.ObjectReview, authorization.ActionReviewModerate))
	{
		reviews.GET("/reviews/pending", s.ListPendingReviews)
		reviews.POST("/reviews/:id/approve", s.ApproveReview)
		reviews.POST("/reviews/:id/reject", s.RejectReview)
	}

	tickets := admin.Group("", s.authorize(authorization.ObjectTicket, authorization.ActionTicketManage))
	{
		tickets.GET("/tickets", s.ListTickets)
		tickets.POST("/tickets/:id/review", s.SetTicketInReview)
		tickets.POST("/tickets/:id/resolve", s.ResolveTicket)
		tickets.POST("/tickets/:id/close", s.CloseTicket)
	}

	admin.POST("/mirror/sync",
		s.authorize(authorization.ObjectMirror, authorization.ActionMirrorSync),
		s.TriggerMirrorSync)
}
