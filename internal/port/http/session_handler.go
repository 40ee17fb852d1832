package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/service"
)

type addExtraRequest struct {
	ExtraID string `json:"extra_id"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type checkoutRequest struct {
	CustomerName        string `json:"customer_name,omitempty"`
	CustomerEmail       string `json:"customer_email,omitempty"`
	CustomerPhone       string `json:"customer_phone,omitempty"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.CreateSession(r.Context())
	if err != nil {
		handleServiceError(w, err, "Failed to create booking session", h.log)
		return
	}
	respondWithJSON(w, http.StatusCreated, view)
}

func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		handleServiceError(w, err, "Failed to get booking session", h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleUpdateSession(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	view, err := h.sessions.UpdateSession(r.Context(), chi.URLParam(r, "sessionID"), req)
	if err != nil {
		handleServiceError(w, err, "Failed to update booking session", h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleResetSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.ResetSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		handleServiceError(w, err, "Failed to reset booking session", h.log)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleAddExtra(w http.ResponseWriter, r *http.Request) {
	var req addExtraRequest
	if err := decodeJSON(w, r, &req); err != nil || req.ExtraID == "" {
		respondWithError(w, http.StatusBadRequest, "extra_id is required")
		return
	}
	view, err := h.sessions.AddExtra(r.Context(), chi.URLParam(r, "sessionID"), req.ExtraID)
	if err != nil {
		handleServiceError(w, err, "Failed to add extra", h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleRemoveExtra(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.RemoveExtra(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "extraID"))
	if err != nil {
		handleServiceError(w, err, "Failed to remove extra", h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleSetExtraQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	view, err := h.sessions.SetExtraQuantity(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "extraID"), req.Quantity)
	if err != nil {
		handleServiceError(w, err, "Failed to set extra quantity", h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// HandleCheckout accepts an empty body. Contact fields missing from the body
// are taken from the caller's token.
func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	contact := entity.Contact{Name: req.CustomerName, Email: req.CustomerEmail, Phone: req.CustomerPhone}
	if id, ok := IdentityFromContext(r.Context()); ok {
		contact.CustomerID = id.UserID
		if contact.Email == "" {
			contact.Email = id.Email
		}
		if contact.Name == "" {
			contact.Name = id.Name
		}
	}

	booking, err := h.bookings.Checkout(r.Context(), chi.URLParam(r, "sessionID"), service.CheckoutRequest{
		Contact:             contact,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		handleServiceError(w, err, "Failed to check out booking session", h.log)
		return
	}
	respondWithJSON(w, http.StatusCreated, booking)
}
