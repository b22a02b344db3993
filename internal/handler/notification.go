package handler

import (
	"errors"
	"net/http"

	"github.com/orderdesk/emailer/internal/fetch"
	"github.com/orderdesk/emailer/internal/repository"
	"github.com/orderdesk/emailer/internal/service"
)

// SendOrderConfirmation triggers an order confirmation email.
// POST /api/v1/notifications/order-confirmation
func (h *Handler) SendOrderConfirmation(w http.ResponseWriter, r *http.Request) {
	var req service.SendRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}

	if err := h.notifier.Send(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingRequiredField):
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Order, user or buyer not found")
		case errors.Is(err, fetch.ErrUnexpectedStatus):
			writeError(w, http.StatusBadGateway, "document_fetch_failed", "Failed to download the order form")
		default:
			h.log.Error().Err(err).Str("document_id", req.DocumentID).Msg("order confirmation failed")
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to send order confirmation")
		}
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}
