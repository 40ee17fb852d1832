package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/adapter/payment"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/bookingstate"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/catalog"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/logger"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/repository"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/service"
)

const (
	dataSourceHeader = "X-Data-Source"
	maxBodyBytes     = 1 << 20
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorResponse{Success: false, Error: message})
}

// respondWithCatalog writes catalog items and tags where they came from.
func respondWithCatalog[T any](w http.ResponseWriter, result catalog.Result[T]) {
	w.Header().Set(dataSourceHeader, string(result.Source))
	respondWithJSON(w, http.StatusOK, result.Items)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidRoomCount),
		errors.Is(err, entity.ErrInvalidExtra),
		errors.Is(err, entity.ErrDuplicateExtra),
		errors.Is(err, entity.ErrInvalidScheduledTime),
		errors.Is(err, entity.ErrInvalidScheduledDate),
		errors.Is(err, entity.ErrIncompleteBooking),
		errors.Is(err, entity.ErrInvalidSession),
		errors.Is(err, service.ErrInvalidPaymentRequest),
		errors.Is(err, service.ErrStatusNotSettable):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, entity.ErrServiceNotFound),
		errors.Is(err, entity.ErrExtraNotFound),
		errors.Is(err, entity.ErrSuburbNotFound),
		errors.Is(err, entity.ErrCleanerNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrBookingAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrOptimisticLock),
		errors.Is(err, repository.ErrAlreadyExists),
		errors.Is(err, entity.ErrInvalidTransition),
		errors.Is(err, service.ErrBookingNotPayable),
		errors.Is(err, service.ErrBookingNotCancellable):
		return http.StatusConflict
	case errors.Is(err, payment.ErrGatewayUnavailable),
		errors.Is(err, bookingstate.ErrStateUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError maps service errors to a status and the error envelope.
// Internal failures are logged and answered with a generic message.
func handleServiceError(w http.ResponseWriter, err error, defaultMessage string, log logger.Logger) {
	code := errorStatus(err)
	if code == http.StatusInternalServerError {
		log.Errorf("%s: %v", defaultMessage, err)
		respondWithError(w, code, defaultMessage)
		return
	}
	log.Debugf("%s: %v (status %d)", defaultMessage, err, code)
	respondWithError(w, code, err.Error())
}

// decodeJSON reads at most maxBodyBytes of the request body into dest.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dest)
}

// parseIntQueryParam falls back to defaultValue for missing or non-positive
// values and caps the result at maxValue.
func parseIntQueryParam(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	valInt, err := strconv.Atoi(valStr)
	if err != nil || valInt <= 0 {
		return defaultValue
	}
	return min(valInt, maxValue)
}
