package message

import (
	"github.com/gigbridge/gigbridge/internal/message/repository"
	"github.com/gigbridge/gigbridge/internal/message/service"
	"go.uber.org/fx"
)

var Module = fx.Module("message.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
