package bootstrap

import (
	"context"
	"log/slog"

	"local-deals/internal/infra/cache"
	"local-deals/internal/pkg/config"
	"local-deals/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
		NewDealCache,
	),
)

// NewRedis returns a nil client when REDIS_URL is unset.
func NewRedis(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*redis.Client, error) {
	if cfg.Redis.URL == "" {
		logger.Info("redis disabled, deal listings are not cached")
		return nil, nil
	}

	client, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}

func NewDealCache(client *redis.Client, cfg config.Config) shared.DealCache {
	if client == nil {
		return cache.NopDealCache{}
	}
	return cache.NewDealListCache(client, cfg.Redis.DealListTTL)
}
