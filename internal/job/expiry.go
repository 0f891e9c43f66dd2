package job

import (
	"context"
	"log/slog"
	"time"

	"local-deals/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

const sweepTimeout = 30 * time.Second

type DealExpirer interface {
	ExpireOverdue(ctx context.Context) (int64, error)
}

// Scheduler runs the periodic deal expiry sweep.
type Scheduler struct {
	cron    *cron.Cron
	expirer DealExpirer
	expired prometheus.Counter
	logger  *slog.Logger
}

func NewScheduler(expirer DealExpirer, expired prometheus.Counter, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		expirer: expirer,
		expired: expired,
		logger:  logger,
	}
}

func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() { _, _ = s.SweepExpired(context.Background()) }); err != nil {
		return errs.Wrapf(err, "schedule expiry sweep %q", spec)
	}
	return nil
}

// SweepExpired expires overdue deals once and returns how many changed.
func (s *Scheduler) SweepExpired(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	n, err := s.expirer.ExpireOverdue(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "expiry sweep failed", "error", err)
		return 0, err
	}
	if n > 0 {
		s.expired.Add(float64(n))
	}
	s.logger.DebugContext(ctx, "expiry sweep finished", "expired", n)
	return n, nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for a running sweep or ctx, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
