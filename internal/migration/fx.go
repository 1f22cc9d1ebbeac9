package migration

import (
	biddomain "github.com/gigbridge/gigbridge/internal/bid/domain"
	"github.com/gigbridge/gigbridge/internal/config"
	identitydomain "github.com/gigbridge/gigbridge/internal/identity/domain"
	messagedomain "github.com/gigbridge/gigbridge/internal/message/domain"
	mirrordomain "github.com/gigbridge/gigbridge/internal/mirror/domain"
	notificationdomain "github.com/gigbridge/gigbridge/internal/notification/domain"
	pipelinedomain "github.com/gigbridge/gigbridge/internal/pipeline/domain"
	profiledomain "github.com/gigbridge/gigbridge/internal/profile/domain"
	projectdomain "github.com/gigbridge/gigbridge/internal/project/domain"
	reviewdomain "github.com/gigbridge/gigbridge/internal/review/domain"
	"github.com/gigbridge/gigbridge/internal/seed"
	supportdomain "github.com/gigbridge/gigbridge/internal/support/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql are dev conveniences; gorm derives the
			// schema from the models instead of the versioned SQL.
			if err := autoMigrate(conn); err != nil {
				return err
			}
		}

		return seed.EnsureBootstrapAdmin(conn, cfg)
	}),
)

func autoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&identitydomain.User{},
		&identitydomain.Session{},
		&profiledomain.Profile{},
		&projectdomain.Project{},
		&biddomain.Bid{},
		&pipelinedomain.Shortlist{},
		&pipelinedomain.Interview{},
		&messagedomain.Message{},
		&reviewdomain.Review{},
		&notificationdomain.Notification{},
		&supportdomain.Ticket{},
		&mirrordomain.Checkpoint{},
	)
}
