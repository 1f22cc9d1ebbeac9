package mirror

import (
	"context"
	"time"

	"github.com/gigbridge/gigbridge/internal/config"
	"github.com/gigbridge/gigbridge/internal/mirror/domain"
	"github.com/gigbridge/gigbridge/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const runLockKey = "mirror:run:lock"

type WorkerParams struct {
	fx.In

	Cfg    config.Config
	Log    *zap.Logger
	Svc    domain.Service
	Locker *ratelimit.Locker `optional:"true"`
}

// Worker drains changed rows into the mirror store on an interval. A redis
// lock fences concurrent instances; losing the lock skips the tick.
type Worker struct {
	log      *zap.Logger
	svc      domain.Service
	locker   *ratelimit.Locker
	interval time.Duration
	backoff  time.Duration
}

func NewWorker(p WorkerParams) *Worker {
	interval := p.Cfg.Mirror.RunInterval
	if interval <= 0 {
		interval = time.Minute
	}
	backoff := p.Cfg.Mirror.RetryBackoff
	if backoff <= 0 {
		backoff = 30 * time.Second
	}
	return &Worker{
		log:      p.Log.Named("mirror.worker"),
		svc:      p.Svc,
		locker:   p.Locker,
		interval: interval,
		backoff:  backoff,
	}
}

func (w *Worker) RunForever(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		delay := time.Duration(0)
		if err := w.RunOnce(ctx); err != nil {
			w.log.Warn("mirror run failed", zap.Error(err))
			delay = w.backoff
		}

		if delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *Worker) RunOnce(ctx context.Context) error {
	if w.locker != nil {
		token, acquired, err := w.locker.TryLock(ctx, runLockKey, w.interval)
		if err != nil {
			return err
		}
		if !acquired {
			return nil
		}
		defer func() {
			if err := w.locker.Release(ctx, runLockKey, token); err != nil {
				w.log.Warn("mirror lock release failed", zap.Error(err))
			}
		}()
	}

	_, err := w.svc.Sync(ctx, domain.SyncRequest{Action: domain.ActionAll})
	return err
}
