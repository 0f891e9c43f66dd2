package components

import (
	"local-deals/internal/handler"
	"local-deals/internal/handler/api"
	"local-deals/internal/handler/middleware"
	"local-deals/internal/infra/storage"
	"local-deals/internal/pkg/clock"
	"local-deals/internal/pkg/config"
	"local-deals/internal/pkg/jwt"
	"local-deals/internal/usecase/commands"
	"local-deals/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		middleware.NewAuthMiddleware,
		middleware.NewMetrics,
		func(rdb *redis.Client, cfg config.Config) *middleware.RateLimiter {
			return middleware.NewAuthRateLimiter(rdb, cfg.RateLimit)
		},
		func(cfg config.Config) (*storage.LocalStore, error) {
			return storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.PublicPrefix)
		},
		newAuthHandler,
		newBusinessHandler,
		newDealHandler,
		newCartHandler,
		newWishlistHandler,
		newClaimHandler,
		api.NewVerificationHandler,
		api.NewRatingHandler,
		api.NewReportHandler,
		newUploadHandler,
	),
	fx.Invoke(handler.NewRouter),
)

func newAuthHandler(cmds commands.AuthCommands, users queries.UserQueries, cfg config.Config, tokens *jwt.Service) *api.AuthHandler {
	return api.NewAuthHandler(cmds, users, cfg.Cookie, tokens)
}

func newBusinessHandler(cmds commands.BusinessCommands, q queries.BusinessQueries, cfg config.Config, tokens *jwt.Service) *api.BusinessHandler {
	return api.NewBusinessHandler(cmds, q, cfg.Cookie, tokens)
}

func newDealHandler(cmds commands.DealCommands, q queries.DealQueries, clk clock.Clock) *api.DealHandler {
	return api.NewDealHandler(cmds, q, clk)
}

func newCartHandler(cmds commands.CartCommands, q queries.CartQueries, clk clock.Clock) *api.CartHandler {
	return api.NewCartHandler(cmds, q, clk)
}

func newWishlistHandler(cmds commands.WishlistCommands, q queries.WishlistQueries, clk clock.Clock) *api.WishlistHandler {
	return api.NewWishlistHandler(cmds, q, clk)
}

func newClaimHandler(cmds commands.ClaimCommands, q queries.ClaimQueries, clk clock.Clock, metrics *middleware.Metrics) *api.ClaimHandler {
	return api.NewClaimHandler(cmds, q, clk, metrics)
}

func newUploadHandler(store *storage.LocalStore, cfg config.Config) *api.UploadHandler {
	return api.NewUploadHandler(store, cfg.Upload.MaxBytes)
}
