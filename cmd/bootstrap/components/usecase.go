package components

import (
	"reservas-backend/internal/pkg/clock"
	"reservas-backend/internal/usecase/commands"
	"reservas-backend/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewSpaceQueries,
		queries.NewCouponQueries,
		queries.NewMemberQueries,
		queries.NewBlockedDateQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewReservationCommands,
		commands.NewStatusCommands,
		commands.NewPaymentCommands,
		commands.NewMemberCommands,
		commands.NewBlockedDateCommands,
	),
)
