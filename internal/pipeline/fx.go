package pipeline

import (
	"github.com/gigbridge/gigbridge/internal/pipeline/repository"
	"github.com/gigbridge/gigbridge/internal/pipeline/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pipeline.service",
	fx.Provide(repository.ProvideShortlists),
	fx.Provide(repository.ProvideInterviews),
	fx.Provide(service.New),
)
