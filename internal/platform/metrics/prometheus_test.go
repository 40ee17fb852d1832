package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsManager_Counters(t *testing.T) {
	m := NewMetricsManager("booking_test")

	m.SessionsCreatedTotal.Inc()
	m.CatalogRequestsTotal.WithLabelValues("services", "fallback").Inc()
	m.CatalogRequestsTotal.WithLabelValues("services", "fallback").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsCreatedTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CatalogRequestsTotal.WithLabelValues("services", "fallback")))
}

func TestMetricsManager_Handler(t *testing.T) {
	m := NewMetricsManager("booking_test")
	m.BookingsCreatedTotal.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "booking_test_bookings_created_total 1")
}

func TestMetricsManager_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetricsManager("booking_test")
		NewMetricsManager("booking_test")
	})
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "error", Outcome(errors.New("boom")))
}
