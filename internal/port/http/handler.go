package http

import (
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/logger"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/service"
)

// Handler serves the booking API over the application services.
type Handler struct {
	catalog  service.CatalogService
	sessions service.BookingSessionService
	bookings service.BookingService
	payments service.PaymentService
	log      logger.Logger
}

func NewHandler(
	catalogService service.CatalogService,
	sessionService service.BookingSessionService,
	bookingService service.BookingService,
	paymentService service.PaymentService,
	log logger.Logger,
) *Handler {
	return &Handler{
		catalog:  catalogService,
		sessions: sessionService,
		bookings: bookingService,
		payments: paymentService,
		log:      log.Named("http"),
	}
}
