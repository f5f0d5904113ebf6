package components

import (
	"tour-booking/internal/handler"
	"tour-booking/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewPaymentHandler,
		api.NewCatalogHandler,
		api.NewReportHandler,
	),
	fx.Invoke(handler.NewRouter),
)
