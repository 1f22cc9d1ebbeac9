package mirror

import (
	"context"
	"strings"

	"github.com/gigbridge/gigbridge/internal/config"
	"github.com/gigbridge/gigbridge/internal/mirror/repository"
	"github.com/gigbridge/gigbridge/internal/mirror/service"
	"github.com/gigbridge/gigbridge/internal/mirror/store"
	"github.com/gigbridge/gigbridge/internal/ratelimit"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var Module = fx.Module("mirror.service",
	fx.Provide(repository.ProvideCheckpoints),
	fx.Provide(newDocStore),
	fx.Provide(newLocker),
	fx.Provide(service.New),
	fx.Provide(NewWorker),
	fx.Invoke(runWorker),
)

func newDocStore(cfg config.Config) store.DocStore {
	if !cfg.Mirror.Enabled || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	return store.NewRedis(redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}))
}

func newLocker(cfg config.Config) *ratelimit.Locker {
	if !cfg.Mirror.Enabled || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	return ratelimit.NewLocker(redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}))
}

func runWorker(lc fx.Lifecycle, cfg config.Config, worker *Worker) {
	if !cfg.Mirror.Enabled {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithCancel(context.Background())

			go worker.RunForever(ctx)

			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})

			return nil
		},
	})
}
