package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/bwmarrin/snowflake"
	biddomain "github.com/gigbridge/gigbridge/internal/bid/domain"
	"github.com/gigbridge/gigbridge/internal/config"
	"github.com/gigbridge/gigbridge/internal/mirror/domain"
	"github.com/gigbridge/gigbridge/internal/mirror/store"
	projectdomain "github.com/gigbridge/gigbridge/internal/project/domain"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	entityProject = "project"
	entityBid     = "bid"
)

type Params struct {
	fx.In

	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	Projects    projectdomain.Repository
	Bids        biddomain.Repository
	Checkpoints domain.CheckpointRepository
	Store       store.DocStore `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	projects    projectdomain.Repository
	bids        biddomain.Repository
	checkpoints domain.CheckpointRepository
	store       store.DocStore
	batchSize   int
	entropy     *rand.Rand
}

func New(p Params) domain.Service {
	batch := p.Cfg.Mirror.BatchSize
	if batch <= 0 {
		batch = 100
	}
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("mirror.service"),
		projects:    p.Projects,
		bids:        p.Bids,
		checkpoints: p.Checkpoints,
		store:       p.Store,
		batchSize:   batch,
		entropy:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Service) Sync(ctx context.Context, req domain.SyncRequest) (domain.SyncResult, error) {
	if s.store == nil {
		return domain.SyncResult{}, domain.ErrDisabled
	}

	result := domain.SyncResult{
		RunID: ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String(),
	}

	switch req.Action {
	case domain.ActionProject:
		s.syncProjects(ctx, req.IDs, &result)
	case domain.ActionBid:
		s.syncBids(ctx, req.IDs, &result)
	case domain.ActionAll:
		if len(req.IDs) != 0 {
			return domain.SyncResult{}, domain.ErrInvalidAction
		}
		s.syncProjects(ctx, nil, &result)
		s.syncBids(ctx, nil, &result)
	default:
		return domain.SyncResult{}, domain.ErrInvalidAction
	}

	s.log.Info("mirror sync finished",
		zap.String("run_id", result.RunID),
		zap.String("action", string(req.Action)),
		zap.Int("synced", result.Synced),
		zap.Int("failed", result.Failed))
	return result, nil
}

func (s *Service) syncProjects(ctx context.Context, ids []string, result *domain.SyncResult) {
	if len(ids) != 0 {
		for _, raw := range ids {
			id, err := snowflake.ParseString(raw)
			if err != nil || id == 0 {
				result.Failed++
				continue
			}
			project, err := s.projects.FindByID(ctx, s.db, id)
			if err != nil || project == nil {
				result.Failed++
				continue
			}
			s.pushProject(ctx, project, result)
		}
		return
	}

	since := s.watermark(ctx, entityProject)
	projects, err := s.projects.ListChangedSince(ctx, s.db, since, s.batchSize)
	if err != nil {
		s.log.Warn("mirror project scan failed", zap.Error(err))
		return
	}

	for _, project := range projects {
		before := result.Failed
		s.pushProject(ctx, project, result)
		if result.Failed > before {
			// Leave the watermark at the last good row so the next run
			// retries from the failure.
			return
		}
		s.advance(ctx, entityProject, project.UpdatedAt)
	}
}

func (s *Service) syncBids(ctx context.Context, ids []string, result *domain.SyncResult) {
	if len(ids) != 0 {
		for _, raw := range ids {
			id, err := snowflake.ParseString(raw)
			if err != nil || id == 0 {
				result.Failed++
				continue
			}
			bid, err := s.bids.FindByID(ctx, s.db, id)
			if err != nil || bid == nil {
				result.Failed++
				continue
			}
			s.pushBid(ctx, bid, result)
		}
		return
	}

	since := s.watermark(ctx, entityBid)
	bids, err := s.bids.ListChangedSince(ctx, s.db, since, s.batchSize)
	if err != nil {
		s.log.Warn("mirror bid scan failed", zap.Error(err))
		return
	}

	for _, bid := range bids {
		before := result.Failed
		s.pushBid(ctx, bid, result)
		if result.Failed > before {
			return
		}
		s.advance(ctx, entityBid, bid.UpdatedAt)
	}
}

func (s *Service) pushProject(ctx context.Context, project *projectdomain.Project, result *domain.SyncResult) {
	bids, err := s.bids.ListByProject(ctx, s.db, project.ID)
	if err != nil {
		s.log.Warn("mirror bid fetch failed",
			zap.String("project_id", project.ID.String()), zap.Error(err))
		result.Failed++
		return
	}

	doc := domain.ProjectDoc{
		ID:        project.ID.String(),
		ClientID:  project.ClientID.String(),
		Title:     project.Title,
		Slug:      project.Slug,
		Category:  project.Category,
		BudgetMin: project.BudgetMin,
		BudgetMax: project.BudgetMax,
		Status:    string(project.Status),
		Bids:      make([]domain.BidDoc, 0, len(bids)),
		UpdatedAt: project.UpdatedAt,
	}
	if project.FreelancerID != nil {
		doc.FreelancerID = project.FreelancerID.String()
	}
	for _, bid := range bids {
		doc.Bids = append(doc.Bids, bidDoc(bid))
	}

	if err := s.store.PutProject(ctx, doc); err != nil {
		s.log.Warn("mirror project write failed",
			zap.String("project_id", doc.ID), zap.Error(err))
		result.Failed++
		return
	}
	result.Synced++
}

func (s *Service) pushBid(ctx context.Context, bid *biddomain.Bid, result *domain.SyncResult) {
	if err := s.store.PutBid(ctx, bidDoc(bid)); err != nil {
		s.log.Warn("mirror bid write failed",
			zap.String("bid_id", bid.ID.String()), zap.Error(err))
		result.Failed++
		return
	}
	result.Synced++
}

func bidDoc(bid *biddomain.Bid) domain.BidDoc {
	return domain.BidDoc{
		ID:           bid.ID.String(),
		ProjectID:    bid.ProjectID.String(),
		FreelancerID: bid.FreelancerID.String(),
		Amount:       bid.Amount,
		DeliveryDays: bid.DeliveryDays,
		Status:       string(bid.Status),
		UpdatedAt:    bid.UpdatedAt,
	}
}

func (s *Service) watermark(ctx context.Context, entity string) time.Time {
	checkpoint, err := s.checkpoints.Get(ctx, s.db, entity)
	if err != nil {
		s.log.Warn("mirror checkpoint read failed", zap.String("entity", entity), zap.Error(err))
	}
	if checkpoint == nil {
		return time.Time{}
	}
	return checkpoint.LastSyncedAt
}

func (s *Service) advance(ctx context.Context, entity string, to time.Time) {
	err := s.checkpoints.Put(ctx, s.db, &domain.Checkpoint{
		Entity:       entity,
		LastSyncedAt: to,
	})
	if err != nil {
		s.log.Warn("mirror checkpoint write failed", zap.String("entity", entity), zap.Error(err))
	}
}
