package identity

import (
	"github.com/gigbridge/gigbridge/internal/identity/repository"
	"github.com/gigbridge/gigbridge/internal/identity/service"
	"github.com/gigbridge/gigbridge/internal/identity/session"
	"go.uber.org/fx"
)

var Module = fx.Module("identity.service",
	fx.Provide(repository.Provide),
	fx.Provide(repository.ProvideSessions),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)
