package components

import (
	"reservas-backend/internal/infra/db"
	"reservas-backend/internal/infra/notifier"
	"reservas-backend/internal/infra/payment"
	"reservas-backend/internal/infra/readstore"
	"reservas-backend/internal/infra/uow"
	"reservas-backend/internal/pkg/config"
	"reservas-backend/internal/usecase/commands"
	"reservas-backend/internal/usecase/queries"
	"reservas-backend/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
	gatewayModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Space
		fx.Annotate(
			readstore.NewSpaceReadStore,
			fx.As(new(queries.SpaceViewRepo)),
		),
		// Member
		fx.Annotate(
			readstore.NewMemberReadStore,
			fx.As(new(queries.MemberViewRepo)),
		),
		// Reservation
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
		// BlockedDate
		fx.Annotate(
			readstore.NewBlockedDateReadStore,
			fx.As(new(queries.BlockedDateViewRepo)),
		),
		// Admin
		fx.Annotate(
			readstore.NewAdminReadStore,
			fx.As(new(queries.AdminReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
		NewCommandReads,
	),
)

var gatewayModule = fx.Module("persistence/gateway",
	fx.Provide(
		NewNotifier,
		NewPaymentGateway,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

// Read side used outside of transactions (availability checks, validations).
func NewCommandReads(u shared.UnitOfWork) shared.CommandReads {
	return u.CommandReads()
}

func NewNotifier(cfg config.Config) commands.Notifier {
	return notifier.NewLogNotifier(cfg.Notify)
}

func NewPaymentGateway(cfg config.Config) commands.PaymentGateway {
	return payment.NewSimulatedGateway(cfg.Payment)
}
