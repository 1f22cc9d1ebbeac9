package email

import (
	"github.com/gigbridge/gigbridge/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("providers.email",
	fx.Provide(func(cfg config.Config, log *zap.Logger) Provider {
		if cfg.SMTP.Host == "" {
			return Noop{}
		}
		return NewSMTP(SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, log)
	}),
)
