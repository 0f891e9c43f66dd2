package components

import (
	"local-deals/internal/pkg/clock"
	"local-deals/internal/pkg/jwt"
	"local-deals/internal/pkg/password"
	"local-deals/internal/usecase"
	"local-deals/internal/usecase/commands"
	"local-deals/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		password.NewDefaultHasher,
		fx.As(new(commands.PasswordHasher)),
	),
	func(s *jwt.Service) commands.TokenIssuer { return s },
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBusinessCommands,
		commands.NewDealCommands,
		commands.NewCartCommands,
		commands.NewWishlistCommands,
		commands.NewClaimCommands,
		commands.NewVerificationCommands,
		commands.NewRatingCommands,
		commands.NewReportCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewBusinessQueries,
		queries.NewDealQueries,
		queries.NewCartQueries,
		queries.NewWishlistQueries,
		queries.NewClaimQueries,
		queries.NewVerificationQueries,
		queries.NewRatingQueries,
		queries.NewReportQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
