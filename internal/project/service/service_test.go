package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/authctx"
	identitydomain "github.com/gigbridge/gigbridge/internal/identity/domain"
	"github.com/gigbridge/gigbridge/internal/project/domain"
	"github.com/gigbridge/gigbridge/internal/project/repository"
	"github.com/gigbridge/gigbridge/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	svc   domain.Service
	genID *snowflake.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&domain.Project{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	svc := New(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return &fixture{db: dbConn, svc: svc, genID: node}
}

func clientCtx(f *fixture) context.Context {
	return authctx.WithActor(context.Background(), authctx.Actor{
		UserID: f.genID.Generate(),
		Role:   identitydomain.RoleClient,
	})
}

func TestCreateRequiresClientRole(t *testing.T) {
	f := newFixture(t)
	ctx := authctx.WithActor(context.Background(), authctx.Actor{
		UserID: f.genID.Generate(),
		Role:   identitydomain.RoleFreelancer,
	})

	_, err := f.svc.Create(ctx, domain.CreateProjectRequest{Title: "Build an API"})
	if !errors.Is(err, domain.ErrInvalidActor) {
		t.Fatalf("expected ErrInvalidActor, got %v", err)
	}
}

func TestCreateRejectsInvertedBudget(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(clientCtx(f), domain.CreateProjectRequest{
		Title:     "Build an API",
		BudgetMin: 500,
		BudgetMax: 100,
	})
	if !errors.Is(err, domain.ErrInvalidBudget) {
		t.Fatalf("expected ErrInvalidBudget, got %v", err)
	}
}

func TestCreateGeneratesUniqueSlugs(t *testing.T) {
	f := newFixture(t)
	ctx := clientCtx(f)

	first, err := f.svc.Create(ctx, domain.CreateProjectRequest{Title: "Build an API"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := f.svc.Create(ctx, domain.CreateProjectRequest{Title: "Build an API"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if first.Slug != "build-an-api" {
		t.Fatalf("expected slug build-an-api, got %q", first.Slug)
	}
	if second.Slug != "build-an-api-2" {
		t.Fatalf("expected slug build-an-api-2, got %q", second.Slug)
	}
}

func TestGetResolvesIDAndSlug(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(clientCtx(f), domain.CreateProjectRequest{Title: "Logo Design"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	byID, err := f.svc.Get(context.Background(), created.ID.String())
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	bySlug, err := f.svc.Get(context.Background(), created.Slug)
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if byID.ID != created.ID || bySlug.ID != created.ID {
		t.Fatal("expected both lookups to resolve the same project")
	}

	if _, err := f.svc.Get(context.Background(), "no-such-project"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListFiltersAndPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := clientCtx(f)

	for _, title := range []string{"One", "Two", "Three"} {
		if _, err := f.svc.Create(ctx, domain.CreateProjectRequest{
			Title:    title,
			Category: "design",
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	if _, err := f.svc.Create(ctx, domain.CreateProjectRequest{
		Title:    "Other",
		Category: "backend",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	resp, err := f.svc.List(context.Background(), domain.ListProjectsRequest{
		Category: "design",
		PageSize: 2,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(resp.Projects) != 2 || !resp.HasMore {
		t.Fatalf("expected first page of 2 with more, got %d (more=%v)", len(resp.Projects), resp.HasMore)
	}

	rest, err := f.svc.List(context.Background(), domain.ListProjectsRequest{
		Category:  "design",
		PageSize:  2,
		PageToken: resp.NextPageToken,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rest.Projects) != 1 || rest.HasMore {
		t.Fatalf("expected final page of 1, got %d (more=%v)", len(rest.Projects), rest.HasMore)
	}
}
