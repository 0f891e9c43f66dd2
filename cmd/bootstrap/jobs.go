package bootstrap

import (
	"context"
	"log/slog"

	"local-deals/internal/handler/middleware"
	"local-deals/internal/job"
	"local-deals/internal/pkg/config"
	"local-deals/internal/usecase/commands"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		NewScheduler,
	),
	fx.Invoke(startScheduler),
)

func NewScheduler(deals commands.DealCommands, metrics *middleware.Metrics, logger *slog.Logger) *job.Scheduler {
	return job.NewScheduler(deals, metrics.ExpiredDeals, logger)
}

func startScheduler(lc fx.Lifecycle, s *job.Scheduler, cfg config.Config, logger *slog.Logger) error {
	if err := s.Register(cfg.Jobs.ExpirySweepSpec); err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting expiry sweeper", "spec", cfg.Jobs.ExpirySweepSpec)
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.Stop(ctx)
			return nil
		},
	})
	return nil
}
