package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	Status    Status
	Category  string
	ClientID  snowflake.ID
	BudgetMin float64
	BudgetMax float64
	Query     string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, project *Project) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Project, error)
	// FindByIDForUpdate locks the project row for the duration of the
	// surrounding transaction.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Project, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Project, error)
	SlugExists(ctx context.Context, db *gorm.DB, slug string) (bool, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Project, error)
	Update(ctx context.Context, db *gorm.DB, project *Project) error
	// ListChangedSince returns projects updated after the watermark, oldest
	// first, for the mirror worker.
	ListChangedSince(ctx context.Context, db *gorm.DB, since time.Time, limit int) ([]*Project, error)
}
