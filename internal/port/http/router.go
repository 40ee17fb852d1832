package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/app/config"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/metrics"
)

type RouterConfig struct {
	JWTSecret   string
	Metrics     config.MetricsConfig
	ServiceName string
}

// NewRouter wires every route of the booking API.
func NewRouter(h *Handler, m *metrics.MetricsManager, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(h.log.Desugar()))
	r.Use(middleware.Recoverer)
	r.Use(Instrument(m))
	r.Use(OptionalIdentity(cfg.JWTSecret, h.log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics.Enabled {
		r.Method(http.MethodGet, cfg.Metrics.Path, m.Handler())
	}

	SetupCatalogRoutes(r, h)
	SetupSessionRoutes(r, h)
	SetupBookingRoutes(r, h)
	SetupPaymentRoutes(r, h)

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "booking-service"
	}
	return otelhttp.NewHandler(r, serviceName)
}

func SetupCatalogRoutes(r chi.Router, h *Handler) {
	r.Get("/api/services", h.HandleListServices)
	r.Get("/api/services/{slug}", h.HandleGetService)
	r.Get("/api/extras", h.HandleListExtras)
	r.Get("/api/regions", h.HandleListRegions)
	r.Get("/api/suburbs", h.HandleListSuburbs)
	r.Get("/api/areas", h.HandleListAreas)
	r.Get("/api/cleaners", h.HandleListCleaners)
}

func SetupSessionRoutes(r chi.Router, h *Handler) {
	r.Route("/api/booking/sessions", func(r chi.Router) {
		r.Post("/", h.HandleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.HandleGetSession)
			r.Patch("/", h.HandleUpdateSession)
			r.Delete("/", h.HandleResetSession)
			r.Post("/extras", h.HandleAddExtra)
			r.Put("/extras/{extraID}", h.HandleSetExtraQuantity)
			r.Delete("/extras/{extraID}", h.HandleRemoveExtra)
			r.Post("/checkout", h.HandleCheckout)
		})
	})
}

func SetupBookingRoutes(r chi.Router, h *Handler) {
	r.Get("/api/bookings", h.HandleListMyBookings)
	r.Get("/api/bookings/{bookingID}", h.HandleGetBooking)
	r.Post("/api/bookings/{bookingID}/cancel", h.HandleCancelBooking)
	r.Patch("/api/bookings/{bookingID}/status", h.HandleUpdateBookingStatus)
}

func SetupPaymentRoutes(r chi.Router, h *Handler) {
	r.Post("/api/payments/initialize", h.HandleInitializePayment)
	r.Post("/api/payments/verify", h.HandleVerifyPayment)
}
