package components

import (
	"local-deals/internal/infra/readstore"
	"local-deals/internal/infra/uow"
	"local-deals/internal/usecase/queries"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	readstoreModule,
	unitOfWorkModule,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewBusinessReadStore,
			fx.As(new(queries.BusinessReadStore)),
		),
		fx.Annotate(
			readstore.NewDealReadStore,
			fx.As(new(queries.DealReadStore)),
		),
		fx.Annotate(
			readstore.NewCartReadStore,
			fx.As(new(queries.CartReadStore)),
		),
		fx.Annotate(
			readstore.NewWishlistReadStore,
			fx.As(new(queries.WishlistReadStore)),
		),
		fx.Annotate(
			readstore.NewClaimReadStore,
			fx.As(new(queries.ClaimReadStore)),
		),
		fx.Annotate(
			readstore.NewVerificationReadStore,
			fx.As(new(queries.VerificationReadStore)),
		),
		fx.Annotate(
			readstore.NewRatingReadStore,
			fx.As(new(queries.RatingReadStore)),
		),
		fx.Annotate(
			readstore.NewReportReadStore,
			fx.As(new(queries.ReportReadStore)),
		),
	),
)

// Write repositories are owned by the unit of work and reached through shared.Tx.
var unitOfWorkModule = fx.Module("persistence/uow",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)
