package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sbilibin2017/gw-provider-wallet/internal/logger"
	"github.com/sbilibin2017/gw-provider-wallet/internal/models"
	"github.com/sbilibin2017/gw-provider-wallet/internal/services"
)

// DefaultSignatureHeader is the provider's webhook signature header.
const DefaultSignatureHeader = "x-maplerad-signature"

// WebhookVerifier authenticates the raw webhook body against its signature.
type WebhookVerifier interface {
	Verify(body []byte, signature string) error
}

// WebhookProcessor admits and dispatches provider events.
type WebhookProcessor interface {
	Process(ctx context.Context, event *models.ProviderEvent) error
}

// WebhookErrorResponse represents an error response for webhook deliveries
// swagger:model WebhookErrorResponse
type WebhookErrorResponse struct {
	// Error message
	// default: invalid signature
	Error string `json:"error"`
}

// NewWebhookHandler returns the HTTP handler for provider webhook deliveries.
// The signature is verified over the raw body before any parsing. Duplicate
// deliveries are acknowledged with 200 without reprocessing; a 500 is
// returned only when the event could not be admitted, so the provider
// retries exactly the deliveries that had no effect.
// @Summary Provider webhook
// @Description Receives provider event notifications. Authenticated by HMAC signature, not by JWT.
// @Tags webhook
// @Accept json
// @Produce json
// @Success 200 {string} string "Acknowledged"
// @Failure 400 {object} handlers.WebhookErrorResponse "Malformed event"
// @Failure 401 {object} handlers.WebhookErrorResponse "Invalid signature"
// @Failure 500 {object} handlers.WebhookErrorResponse "Event could not be recorded"
// @Router /webhooks/maplerad [post]
func NewWebhookHandler(verifier WebhookVerifier, processor WebhookProcessor, signatureHeader string) http.HandlerFunc {
	if signatureHeader == "" {
		signatureHeader = DefaultSignatureHeader
	}

	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(WebhookErrorResponse{Error: "failed to read body"})
			return
		}

		if err := verifier.Verify(body, r.Header.Get(signatureHeader)); err != nil {
			logger.Log.Warnw("webhook signature rejected", "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(WebhookErrorResponse{Error: "invalid signature"})
			return
		}

		var event models.ProviderEvent
		if err := json.Unmarshal(body, &event); err != nil {
			logger.Log.Warnw("malformed webhook payload", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(WebhookErrorResponse{Error: "malformed event"})
			return
		}

		if err := processor.Process(r.Context(), &event); err != nil {
			if errors.Is(err, services.ErrMissingEventID) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(WebhookErrorResponse{Error: "event has no id"})
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(WebhookErrorResponse{Error: "failed to record event"})
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
