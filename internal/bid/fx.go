package bid

import (
	"github.com/gigbridge/gigbridge/internal/bid/repository"
	"github.com/gigbridge/gigbridge/internal/bid/service"
	"go.uber.org/fx"
)

var Module = fx.Module("bid.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
