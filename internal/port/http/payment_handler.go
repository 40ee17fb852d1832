package http

import (
	"net/http"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/service"
)

type initializePaymentResponse struct {
	Success     bool                             `json:"success"`
	PaymentData *service.InitializePaymentResult `json:"payment_data"`
}

func (h *Handler) HandleInitializePayment(w http.ResponseWriter, r *http.Request) {
	var req service.InitializePaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	result, err := h.payments.Initialize(r.Context(), req)
	if err != nil {
		handleServiceError(w, err, "Internal server error", h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, initializePaymentResponse{Success: true, PaymentData: result})
}

// HandleVerifyPayment answers a declined payment with 400 and a capture that
// needs refunding with 409, both with the result body.
func (h *Handler) HandleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req service.VerifyPaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	result, err := h.payments.Verify(r.Context(), req)
	if err != nil {
		handleServiceError(w, err, "Internal server error", h.log)
		return
	}
	switch {
	case result.RefundRequired:
		respondWithJSON(w, http.StatusConflict, result)
		return
	case !result.Success:
		respondWithJSON(w, http.StatusBadRequest, result)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}
