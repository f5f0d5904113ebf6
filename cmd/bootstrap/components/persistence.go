package components

import (
	"tour-booking/internal/infra/db"
	"tour-booking/internal/infra/readstore"
	"tour-booking/internal/infra/repository"
	"tour-booking/internal/infra/uow"
	"tour-booking/internal/usecase/queries"
	"tour-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
		fx.Annotate(
			readstore.NewPaymentReadStore,
			fx.As(new(queries.PaymentViewRepo)),
		),
		fx.Annotate(
			readstore.NewCatalogReadStore,
			fx.As(new(queries.CatalogViewRepo)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Reservation writes
		fx.Annotate(
			repository.NewReservationRepository,
			fx.As(new(shared.ReservationRepository)),
		),
		// Seat ledger
		fx.Annotate(
			repository.NewInventoryRepository,
			fx.As(new(shared.InventoryLedger)),
		),
		// Catalog reads for the command side
		fx.Annotate(
			repository.NewCatalogRepository,
			fx.As(new(shared.CatalogReads)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
