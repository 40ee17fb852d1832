package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsManager holds the service's Prometheus collectors on a private
// registry.
type MetricsManager struct {
	Registry               *prometheus.Registry
	SessionsCreatedTotal   prometheus.Counter
	StateMutationsTotal    *prometheus.CounterVec
	QuotedTotal            prometheus.Histogram
	BookingsCreatedTotal   prometheus.Counter
	BookingStatusTotal     *prometheus.CounterVec
	PaymentsTotal          *prometheus.CounterVec
	CatalogRequestsTotal   *prometheus.CounterVec
	HTTPRequestErrorsTotal *prometheus.CounterVec
	HTTPRequestLatency     *prometheus.HistogramVec
}

func NewMetricsManager(namespace string) *MetricsManager {
	registry := prometheus.NewRegistry()

	sessionsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_sessions_created_total",
		Help:      "Total number of booking sessions opened.",
	})
	stateMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_state_mutations_total",
		Help:      "Booking state mutations by operation and outcome.",
	}, []string{"operation", "outcome"})
	quotedTotal := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "quoted_total_zar",
		Help:      "Booking totals quoted after a priced mutation, in rand.",
		Buckets:   []float64{250, 500, 750, 1000, 1500, 2000, 3000, 5000, 10000},
	})
	bookingsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created at checkout.",
	})
	bookingStatus := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_status_changes_total",
		Help:      "Booking status changes by target status.",
	}, []string{"status"})
	payments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_total",
		Help:      "Payment operations by stage and outcome.",
	}, []string{"stage", "outcome"})
	catalogRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_requests_total",
		Help:      "Catalog lookups by collection and data source.",
	}, []string{"collection", "source"})
	httpErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_request_errors_total",
		Help:      "HTTP responses with status >= 400 by route and status code.",
	}, []string{"route", "code"})
	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	registry.MustRegister(
		sessionsCreated,
		stateMutations,
		quotedTotal,
		bookingsCreated,
		bookingStatus,
		payments,
		catalogRequests,
		httpErrors,
		httpLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:               registry,
		SessionsCreatedTotal:   sessionsCreated,
		StateMutationsTotal:    stateMutations,
		QuotedTotal:            quotedTotal,
		BookingsCreatedTotal:   bookingsCreated,
		BookingStatusTotal:     bookingStatus,
		PaymentsTotal:          payments,
		CatalogRequestsTotal:   catalogRequests,
		HTTPRequestErrorsTotal: httpErrors,
		HTTPRequestLatency:     httpLatency,
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *MetricsManager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
