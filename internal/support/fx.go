package support

import (
	"github.com/gigbridge/gigbridge/internal/support/repository"
	"github.com/gigbridge/gigbridge/internal/support/service"
	"go.uber.org/fx"
)

var Module = fx.Module("support.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
