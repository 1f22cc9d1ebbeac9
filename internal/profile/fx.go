package profile

import (
	"github.com/gigbridge/gigbridge/internal/profile/repository"
	"github.com/gigbridge/gigbridge/internal/profile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("profile.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
