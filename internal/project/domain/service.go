package domain

import (
	"context"
	"errors"
	"time"
)

type CreateProjectRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Skills      map[string]any `json:"skills"`
	BudgetMin   float64        `json:"budget_min"`
	BudgetMax   float64        `json:"budget_max"`
	Deadline    *time.Time     `json:"deadline,omitempty"`
}

type ListProjectsRequest struct {
	Status    string  `form:"status"`
	Category  string  `form:"category"`
	ClientID  string  `form:"client_id"`
	BudgetMin float64 `form:"budget_min"`
	BudgetMax float64 `form:"budget_max"`
	Query     string  `form:"q"`
	PageToken string  `form:"page_token"`
	PageSize  int     `form:"page_size"`
}

type ListProjectsResponse struct {
	Projects      []Project `json:"projects"`
	NextPageToken string    `json:"next_page_token"`
	HasMore       bool      `json:"has_more"`
}

type Service interface {
	// Create opens a new project owned by the calling client.
	Create(ctx context.Context, req CreateProjectRequest) (Project, error)
	// Get resolves either a snowflake ID or a slug.
	Get(ctx context.Context, idOrSlug string) (Project, error)
	List(ctx context.Context, req ListProjectsRequest) (ListProjectsResponse, error)
}

var (
	ErrInvalidActor      = errors.New("invalid_actor")
	ErrInvalidTitle      = errors.New("invalid_title")
	ErrInvalidBudget     = errors.New("invalid_budget")
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("project_not_found")
	ErrNotOwner          = errors.New("not_project_owner")
	ErrProjectNotOpen    = errors.New("project_not_open")
	ErrInvalidTransition = errors.New("invalid_project_transition")
	ErrProjectImmutable  = errors.New("project_completed_immutable")
)
