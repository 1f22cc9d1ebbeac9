package notification

import (
	"github.com/gigbridge/gigbridge/internal/notification/livefeed"
	"github.com/gigbridge/gigbridge/internal/notification/repository"
	"github.com/gigbridge/gigbridge/internal/notification/service"
	"go.uber.org/fx"
)

var Module = fx.Module("notification.service",
	fx.Provide(livefeed.NewHub),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
