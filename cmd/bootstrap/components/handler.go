package components

import (
	"reservas-backend/internal/handler"
	"reservas-backend/internal/handler/api"
	"reservas-backend/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewReservationHandler,
		api.NewSpaceHandler,
		api.NewMemberHandler,
		api.NewCouponHandler,
		api.NewBlockedDateHandler,
		api.NewPaymentHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
