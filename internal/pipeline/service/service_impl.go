package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/authctx"
	biddomain "github.com/gigbridge/gigbridge/internal/bid/domain"
	identitydomain "github.com/gigbridge/gigbridge/internal/identity/domain"
	notificationdomain "github.com/gigbridge/gigbridge/internal/notification/domain"
	"github.com/gigbridge/gigbridge/internal/pipeline/domain"
	projectdomain "github.com/gigbridge/gigbridge/internal/project/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Shortlists domain.ShortlistRepository
	Interviews domain.InterviewRepository
	Bids       biddomain.Repository
	Projects   projectdomain.Repository
	Notifier   notificationdomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	shortlists domain.ShortlistRepository
	interviews domain.InterviewRepository
	bids       biddomain.Repository
	projects   projectdomain.Repository
	notifier   notificationdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("pipeline.service"),
		genID:      p.GenID,
		shortlists: p.Shortlists,
		interviews: p.Interviews,
		bids:       p.Bids,
		projects:   p.Projects,
		notifier:   p.Notifier,
	}
}

// requireClient resolves the caller and checks ownership of the project.
// Admins act on any project.
func requireClient(ctx context.Context, project *projectdomain.Project) (authctx.Actor, error) {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return authctx.Actor{}, domain.ErrInvalidActor
	}
	if project.ClientID != actor.UserID && actor.Role != identitydomain.RoleAdmin {
		return authctx.Actor{}, domain.ErrNotProjectOwner
	}
	return actor, nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func (s *Service) MarkViewed(ctx context.Context, bidID string) (biddomain.Bid, error) {
	id, err := parseID(bidID)
	if err != nil {
		return biddomain.Bid{}, err
	}

	bid, err := s.bids.FindByID(ctx, s.db, id)
	if err != nil {
		return biddomain.Bid{}, err
	}
	if bid == nil {
		return biddomain.Bid{}, domain.ErrBidNotFound
	}
	project, err := s.projects.FindByID(ctx, s.db, bid.ProjectID)
	if err != nil {
		return biddomain.Bid{}, err
	}
	if project == nil {
		return biddomain.Bid{}, domain.ErrProjectNotFound
	}
	if _, err := requireClient(ctx, project); err != nil {
		return biddomain.Bid{}, err
	}

	if !biddomain.CanTransition(bid.Status, biddomain.StatusViewed) {
		return biddomain.Bid{}, domain.ErrInvalidTransition
	}
	if err := s.bids.UpdateStatus(ctx, s.db, bid.ID, biddomain.StatusViewed); err != nil {
		return biddomain.Bid{}, err
	}
	bid.Status = biddomain.StatusViewed
	return *bid, nil
}

func (s *Service) Shortlist(ctx context.Context, req domain.ShortlistRequest) (domain.Shortlist, error) {
	id, err := parseID(req.BidID)
	if err != nil {
		return domain.Shortlist{}, err
	}

	bid, err := s.bids.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Shortlist{}, err
	}
	if bid == nil {
		return domain.Shortlist{}, domain.ErrBidNotFound
	}
	project, err := s.projects.FindByID(ctx, s.db, bid.ProjectID)
	if err != nil {
		return domain.Shortlist{}, err
	}
	if project == nil {
		return domain.Shortlist{}, domain.ErrProjectNotFound
	}
	if _, err := requireClient(ctx, project); err != nil {
		return domain.Shortlist{}, err
	}

	// Re-shortlisting an already shortlisted bid only refreshes notes.
	if bid.Status != biddomain.StatusShortlisted &&
		!biddomain.CanTransition(bid.Status, biddomain.StatusShortlisted) {
		return domain.Shortlist{}, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	entry := domain.Shortlist{
		ID:           s.genID.Generate(),
		ClientID:     project.ClientID,
		FreelancerID: bid.FreelancerID,
		ProjectID:    project.ID,
		Notes:        req.Notes,
		Status:       domain.ShortlistStatusShortlisted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if bid.Status != biddomain.StatusShortlisted {
			if err := s.bids.UpdateStatus(ctx, tx, bid.ID, biddomain.StatusShortlisted); err != nil {
				return err
			}
		}
		return s.shortlists.Upsert(ctx, tx, &entry)
	})
	if err != nil {
		return domain.Shortlist{}, err
	}

	if err := s.notifier.Dispatch(ctx, notificationdomain.DispatchRequest{
		RecipientID: bid.FreelancerID,
		Type:        notificationdomain.TypeBidShortlisted,
		Title:       "You have been shortlisted",
		Message:     fmt.Sprintf("Your bid on %q was shortlisted", project.Title),
		Data: map[string]any{
			"project_id": project.ID.String(),
			"bid_id":     bid.ID.String(),
		},
	}); err != nil {
		s.log.Warn("shortlist notification failed", zap.Error(err))
	}

	saved, err := s.shortlists.Find(ctx, s.db, project.ClientID, bid.FreelancerID, project.ID)
	if err != nil || saved == nil {
		return entry, nil
	}
	return *saved, nil
}

func (s *Service) ScheduleInterview(ctx context.Context, req domain.ScheduleInterviewRequest) (domain.Interview, error) {
	projectID, err := parseID(req.ProjectID)
	if err != nil {
		return domain.Interview{}, err
	}
	freelancerID, err := parseID(req.FreelancerID)
	if err != nil {
		return domain.Interview{}, err
	}
	if req.ScheduledAt == nil || req.ScheduledAt.IsZero() {
		return domain.Interview{}, domain.ErrInvalidSchedule
	}

	project, err := s.projects.FindByID(ctx, s.db, projectID)
	if err != nil {
		return domain.Interview{}, err
	}
	if project == nil {
		return domain.Interview{}, domain.ErrProjectNotFound
	}
	if _, err := requireClient(ctx, project); err != nil {
		return domain.Interview{}, err
	}
	if project.Status != projectdomain.StatusOpen && project.Status != projectdomain.StatusInProgress {
		return domain.Interview{}, domain.ErrProjectClosed
	}

	now := time.Now().UTC()
	interview := domain.Interview{
		ID:           s.genID.Generate(),
		ClientID:     project.ClientID,
		FreelancerID: freelancerID,
		ProjectID:    project.ID,
		ScheduledAt:  req.ScheduledAt.UTC(),
		MeetingLink:  strings.TrimSpace(req.MeetingLink),
		Notes:        req.Notes,
		Status:       domain.InterviewStatusScheduled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.interviews.Insert(ctx, s.db, &interview); err != nil {
		return domain.Interview{}, err
	}

	if err := s.notifier.Dispatch(ctx, notificationdomain.DispatchRequest{
		RecipientID: freelancerID,
		Type:        notificationdomain.TypeInterview,
		Title:       "Interview scheduled",
		Message:     fmt.Sprintf("An interview for %q is scheduled at %s", project.Title, interview.ScheduledAt.Format(time.RFC3339)),
		Data: map[string]any{
			"project_id":   project.ID.String(),
			"interview_id": interview.ID.String(),
		},
		EmailCopy: true,
	}); err != nil {
		s.log.Warn("interview notification failed", zap.Error(err))
	}

	return interview, nil
}

func (s *Service) ListInterviews(ctx context.Context, projectID string) ([]domain.Interview, error) {
	id, err := parseID(projectID)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}

	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidActor
	}
	// Clients see their own projects; freelancers see interviews they are in.
	if project.ClientID != actor.UserID && actor.Role != identitydomain.RoleAdmin &&
		actor.Role != identitydomain.RoleFreelancer {
		return nil, domain.ErrNotProjectOwner
	}

	items, err := s.interviews.ListByProject(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	interviews := make([]domain.Interview, 0, len(items))
	for _, item := range items {
		if actor.Role == identitydomain.RoleFreelancer && item.FreelancerID != actor.UserID {
			continue
		}
		interviews = append(interviews, *item)
	}
	return interviews, nil
}

func (s *Service) Hire(ctx context.Context, req domain.HireRequest) (projectdomain.Project, error) {
	projectID, err := parseID(req.ProjectID)
	if err != nil {
		return projectdomain.Project{}, err
	}
	freelancerID, err := parseID(req.FreelancerID)
	if err != nil {
		return projectdomain.Project{}, err
	}

	var (
		hired   projectdomain.Project
		pending []notificationdomain.DispatchRequest
	)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		project, err := s.projects.FindByIDForUpdate(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if project == nil {
			return domain.ErrProjectNotFound
		}
		if _, err := requireClient(ctx, project); err != nil {
			return err
		}
		if project.Status != projectdomain.StatusOpen {
			return domain.ErrProjectNotOpen
		}

		if req.BidID != "" {
			bidID, err := parseID(req.BidID)
			if err != nil {
				return err
			}
			bid, err := s.bids.FindByID(ctx, tx, bidID)
			if err != nil {
				return err
			}
			if bid == nil {
				return domain.ErrBidNotFound
			}
			if bid.ProjectID != project.ID || bid.FreelancerID != freelancerID {
				return domain.ErrBidMismatch
			}
			if !biddomain.CanTransition(bid.Status, biddomain.StatusAccepted) {
				return domain.ErrInvalidTransition
			}
			if err := s.bids.UpdateStatus(ctx, tx, bid.ID, biddomain.StatusAccepted); err != nil {
				return err
			}
		}

		entry, err := s.shortlists.Find(ctx, tx, project.ClientID, freelancerID, project.ID)
		if err != nil {
			return err
		}
		if entry != nil {
			if err := s.shortlists.UpdateStatus(ctx, tx, entry.ID, domain.ShortlistStatusHired); err != nil {
				return err
			}
		}

		losers, err := s.bids.RejectOpenByProject(ctx, tx, project.ID, freelancerID)
		if err != nil {
			return err
		}
		for _, loser := range losers {
			pending = append(pending, notificationdomain.DispatchRequest{
				RecipientID: loser.FreelancerID,
				Type:        notificationdomain.TypeBidRejected,
				Title:       "Bid not selected",
				Message:     fmt.Sprintf("Your bid on %q was not selected", project.Title),
				Data:        map[string]any{"project_id": project.ID.String(), "bid_id": loser.ID.String()},
			})
		}

		project.FreelancerID = &freelancerID
		project.Status = projectdomain.StatusInProgress
		if err := s.projects.Update(ctx, tx, project); err != nil {
			return err
		}

		pending = append(pending, notificationdomain.DispatchRequest{
			RecipientID: freelancerID,
			Type:        notificationdomain.TypeProjectStatus,
			Title:       "You have been hired",
			Message:     fmt.Sprintf("You were hired for %q", project.Title),
			Data:        map[string]any{"project_id": project.ID.String()},
			EmailCopy:   true,
		})

		hired = *project
		return nil
	})
	if err != nil {
		return projectdomain.Project{}, err
	}

	// Notifications go out only after the transaction is committed.
	s.dispatchAll(ctx, pending)

	s.log.Info("freelancer hired",
		zap.String("project_id", hired.ID.String()),
		zap.String("freelancer_id", freelancerID.String()))
	return hired, nil
}

func (s *Service) Reject(ctx context.Context, req domain.RejectRequest) error {
	projectID, err := parseID(req.ProjectID)
	if err != nil {
		return err
	}
	freelancerID, err := parseID(req.FreelancerID)
	if err != nil {
		return err
	}

	project, err := s.projects.FindByID(ctx, s.db, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return domain.ErrProjectNotFound
	}
	if _, err := requireClient(ctx, project); err != nil {
		return err
	}

	var pending []notificationdomain.DispatchRequest
	err = s.db.Transaction(func(tx *gorm.DB) error {
		touched := false

		if req.BidID != "" {
			bidID, err := parseID(req.BidID)
			if err != nil {
				return err
			}
			bid, err := s.bids.FindByID(ctx, tx, bidID)
			if err != nil {
				return err
			}
			if bid == nil {
				return domain.ErrBidNotFound
			}
			if bid.ProjectID != project.ID || bid.FreelancerID != freelancerID {
				return domain.ErrBidMismatch
			}
			if !biddomain.CanTransition(bid.Status, biddomain.StatusRejected) {
				return domain.ErrInvalidTransition
			}
			if err := s.bids.UpdateStatus(ctx, tx, bid.ID, biddomain.StatusRejected); err != nil {
				return err
			}
			touched = true
		}

		entry, err := s.shortlists.Find(ctx, tx, project.ClientID, freelancerID, project.ID)
		if err != nil {
			return err
		}
		if entry != nil {
			if err := s.shortlists.UpdateStatus(ctx, tx, entry.ID, domain.ShortlistStatusRejected); err != nil {
				return err
			}
			touched = true
		}

		if !touched {
			return domain.ErrCandidateNotFound
		}

		pending = append(pending, notificationdomain.DispatchRequest{
			RecipientID: freelancerID,
			Type:        notificationdomain.TypeBidRejected,
			Title:       "Application rejected",
			Message:     fmt.Sprintf("You were not selected for %q", project.Title),
			Data:        map[string]any{"project_id": project.ID.String()},
		})
		return nil
	})
	if err != nil {
		return err
	}

	s.dispatchAll(ctx, pending)
	return nil
}

func (s *Service) Complete(ctx context.Context, projectID string) (projectdomain.Project, error) {
	return s.transitionProject(ctx, projectID, projectdomain.StatusCompleted, "Project completed")
}

func (s *Service) Cancel(ctx context.Context, projectID string) (projectdomain.Project, error) {
	return s.transitionProject(ctx, projectID, projectdomain.StatusCancelled, "Project cancelled")
}

func (s *Service) transitionProject(ctx context.Context, projectID string, target projectdomain.Status, title string) (projectdomain.Project, error) {
	id, err := parseID(projectID)
	if err != nil {
		return projectdomain.Project{}, err
	}

	var (
		updated projectdomain.Project
		pending []notificationdomain.DispatchRequest
	)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		project, err := s.projects.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if project == nil {
			return domain.ErrProjectNotFound
		}
		if _, err := requireClient(ctx, project); err != nil {
			return err
		}
		if !projectdomain.CanTransition(project.Status, target) {
			return domain.ErrProjectTransition
		}

		project.Status = target
		if err := s.projects.Update(ctx, tx, project); err != nil {
			return err
		}

		if project.FreelancerID != nil {
			pending = append(pending, notificationdomain.DispatchRequest{
				RecipientID: *project.FreelancerID,
				Type:        notificationdomain.TypeProjectStatus,
				Title:       title,
				Message:     fmt.Sprintf("%q is now %s", project.Title, target),
				Data:        map[string]any{"project_id": project.ID.String()},
			})
		}

		updated = *project
		return nil
	})
	if err != nil {
		return projectdomain.Project{}, err
	}

	s.dispatchAll(ctx, pending)
	return updated, nil
}

func (s *Service) dispatchAll(ctx context.Context, pending []notificationdomain.DispatchRequest) {
	for _, req := range pending {
		if err := s.notifier.Dispatch(ctx, req); err != nil {
			s.log.Warn("pipeline notification failed",
				zap.String("type", string(req.Type)),
				zap.Error(err))
		}
	}
}
