package project

import (
	"github.com/gigbridge/gigbridge/internal/project/repository"
	"github.com/gigbridge/gigbridge/internal/project/service"
	"go.uber.org/fx"
)

var Module = fx.Module("project.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
