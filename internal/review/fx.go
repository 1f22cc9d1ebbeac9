package review

import (
	"github.com/gigbridge/gigbridge/internal/review/repository"
	"github.com/gigbridge/gigbridge/internal/review/service"
	"go.uber.org/fx"
)

var Module = fx.Module("review.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
