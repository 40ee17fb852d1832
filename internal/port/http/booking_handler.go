package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/repository"
)

// staffRoles may move bookings through fulfilment.
var staffRoles = map[string]bool{"admin": true, "cleaner": true}

type updateStatusRequest struct {
	Status entity.BookingStatus `json:"status"`
}

type listBookingsResponse struct {
	Bookings    []entity.Booking `json:"bookings"`
	TotalCount  int64            `json:"total_count"`
	CurrentPage int              `json:"current_page"`
	PageSize    int              `json:"page_size"`
	TotalPages  int              `json:"total_pages"`
}

func (h *Handler) HandleGetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookings.GetBooking(r.Context(), chi.URLParam(r, "bookingID"))
	if err != nil {
		handleServiceError(w, err, "Failed to get booking", h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}

func (h *Handler) HandleListMyBookings(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	q := r.URL.Query()
	result, err := h.bookings.ListCustomerBookings(r.Context(), id.UserID, repository.ListBookingsParams{
		Status:    q.Get("status"),
		Page:      parseIntQueryParam(r, "page", 1, repository.MaxPage),
		PageSize:  parseIntQueryParam(r, "page_size", 10, repository.MaxPageSize),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	})
	if err != nil {
		handleServiceError(w, err, "Failed to list bookings", h.log)
		return
	}

	bookings := result.Bookings
	if bookings == nil {
		bookings = []entity.Booking{}
	}
	respondWithJSON(w, http.StatusOK, listBookingsResponse{
		Bookings:    bookings,
		TotalCount:  result.TotalCount,
		CurrentPage: result.CurrentPage,
		PageSize:    result.PageSize,
		TotalPages:  result.TotalPages,
	})
}

func (h *Handler) HandleCancelBooking(w http.ResponseWriter, r *http.Request) {
	var customerID string
	if id, ok := IdentityFromContext(r.Context()); ok {
		customerID = id.UserID
	}
	booking, err := h.bookings.CancelBooking(r.Context(), chi.URLParam(r, "bookingID"), customerID)
	if err != nil {
		handleServiceError(w, err, "Failed to cancel booking", h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}

func (h *Handler) HandleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if !staffRoles[id.Role] {
		respondWithError(w, http.StatusForbidden, "Only staff can update booking status")
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Status == "" {
		respondWithError(w, http.StatusBadRequest, "status is required")
		return
	}
	booking, err := h.bookings.UpdateBookingStatus(r.Context(), chi.URLParam(r, "bookingID"), req.Status)
	if err != nil {
		handleServiceError(w, err, "Failed to update booking status", h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}
