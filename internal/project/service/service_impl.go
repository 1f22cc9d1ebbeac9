package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/authctx"
	identitydomain "github.com/gigbridge/gigbridge/internal/identity/domain"
	"github.com/gigbridge/gigbridge/internal/project/domain"
	"github.com/gigbridge/gigbridge/pkg/db/pagination"
	"github.com/gosimple/slug"
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
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("project.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProjectRequest) (domain.Project, error) {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return domain.Project{}, domain.ErrInvalidActor
	}
	if actor.Role != identitydomain.RoleClient && actor.Role != identitydomain.RoleAdmin {
		return domain.Project{}, domain.ErrInvalidActor
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Project{}, domain.ErrInvalidTitle
	}
	if req.BudgetMin < 0 || req.BudgetMax < 0 || (req.BudgetMax > 0 && req.BudgetMax < req.BudgetMin) {
		return domain.Project{}, domain.ErrInvalidBudget
	}

	projectSlug, err := s.uniqueSlug(ctx, title)
	if err != nil {
		return domain.Project{}, err
	}

	now := time.Now().UTC()
	project := domain.Project{
		ID:          s.genID.Generate(),
		ClientID:    actor.UserID,
		Title:       title,
		Slug:        projectSlug,
		Description: req.Description,
		Category:    strings.TrimSpace(req.Category),
		Skills:      datatypes.JSONMap(req.Skills),
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Deadline:    req.Deadline,
		Status:      domain.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, &project); err != nil {
		return domain.Project{}, err
	}

	s.log.Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("client_id", actor.UserID.String()),
		zap.String("slug", project.Slug))
	return project, nil
}

// uniqueSlug derives a slug from the title, appending a numeric suffix until
// it no longer collides.
func (s *Service) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		return "", domain.ErrInvalidTitle
	}

	candidate := base
	for i := 2; ; i++ {
		exists, err := s.repo.SlugExists(ctx, s.db, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *Service) Get(ctx context.Context, idOrSlug string) (domain.Project, error) {
	trimmed := strings.TrimSpace(idOrSlug)
	if trimmed == "" {
		return domain.Project{}, domain.ErrInvalidID
	}

	var project *domain.Project
	var err error
	if id, parseErr := snowflake.ParseString(trimmed); parseErr == nil && id != 0 {
		project, err = s.repo.FindByID(ctx, s.db, id)
	} else {
		project, err = s.repo.FindBySlug(ctx, s.db, trimmed)
	}
	if err != nil {
		return domain.Project{}, err
	}
	if project == nil {
		return domain.Project{}, domain.ErrNotFound
	}
	return *project, nil
}

func (s *Service) List(ctx context.Context, req domain.ListProjectsRequest) (domain.ListProjectsResponse, error) {
	filter := domain.ListFilter{
		Status:    domain.Status(strings.TrimSpace(req.Status)),
		Category:  strings.TrimSpace(req.Category),
		BudgetMin: req.BudgetMin,
		BudgetMax: req.BudgetMax,
		Query:     strings.TrimSpace(req.Query),
	}
	if req.ClientID != "" {
		id, err := snowflake.ParseString(req.ClientID)
		if err != nil {
			return domain.ListProjectsResponse{}, domain.ErrInvalidID
		}
		filter.ClientID = id
	}

	limit := req.PageSize
	if limit <= 0 {
		limit = 20
	}
	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  limit,
	})
	if err != nil {
		return domain.ListProjectsResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, limit, func(p *domain.Project) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: p.ID.String()})
		return token
	})
	if len(items) > limit {
		items = items[:limit]
	}

	projects := make([]domain.Project, 0, len(items))
	for _, item := range items {
		projects = append(projects, *item)
	}
	return domain.ListProjectsResponse{
		Projects:      projects,
		NextPageToken: pageInfo.NextPageToken,
		HasMore:       pageInfo.HasMore,
	}, nil
}
