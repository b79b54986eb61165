// Package sweeper runs the periodic idempotency-key cleanup. It is pure
// maintenance: a failed sweep is logged and retried on the next tick, and it
// never blocks in-flight creates.
package sweeper

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type keyCleaner interface {
	CleanupExpiredKeys(ctx context.Context) (int64, error)
}

type Sweeper struct {
	cleaner  keyCleaner
	interval time.Duration
	logger   *logrus.Logger
}

func NewSweeper(cleaner keyCleaner, interval time.Duration, logger *logrus.Logger) *Sweeper {
	return &Sweeper{
		cleaner:  cleaner,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps on every tick until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.WithField("interval", s.interval.String()).Info("Sweeper.Run.started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper.Run.stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	removed, err := s.cleaner.CleanupExpiredKeys(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Sweeper.sweep.error")
		return
	}

	if removed > 0 {
		s.logger.WithField("removedKeys", removed).Info("Sweeper.sweep.complete")
	}
}
