package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-provider-wallet/internal/jwt"
	"github.com/sbilibin2017/gw-provider-wallet/internal/logger"
	"github.com/sbilibin2017/gw-provider-wallet/internal/models"
)

// RatesTokener defines only the methods needed by this handler.
type RatesTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// ExchangeRater defines the interface that the rates service must implement.
type ExchangeRater interface {
	GetExchangeRateForCurrency(ctx context.Context, fromCurrency, toCurrency string) (float32, error)
}

// RatesResponse represents current exchange rates quoted against NGN
// swagger:model RatesResponse
type RatesResponse struct {
	// NGN per NGN, always 1.0
	// default: 1.0
	NGN float64 `json:"NGN"`

	// USD per NGN
	// default: 0.00065
	USD float64 `json:"USD"`

	// GBP per NGN
	// default: 0.00051
	GBP float64 `json:"GBP"`
}

// RatesErrorResponse represents an error response for exchange rates
// swagger:model RatesErrorResponse
type RatesErrorResponse struct {
	// Error message
	// default: Failed to retrieve exchange rates
	Error string `json:"error"`
}

// NewGetRatesHandler returns an HTTP handler for fetching currency exchange rates.
// @Summary Get exchange rates
// @Description Fetches current exchange rates for all supported currencies, quoted against NGN
// @Tags exchange
// @Produce json
// @Success 200 {object} handlers.RatesResponse "Exchange rates"
// @Failure 401 {object} handlers.RatesErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.RatesErrorResponse "Failed to retrieve exchange rates"
// @Router /exchange/rates [get]
// @Security BearerAuth
func NewGetRatesHandler(svc ExchangeRater, tokenGetter RatesTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(RatesErrorResponse{Error: "unauthorized"})
			return
		}
		if _, err := tokenGetter.GetClaims(ctx, tokenStr); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(RatesErrorResponse{Error: "unauthorized"})
			return
		}

		usd, err := svc.GetExchangeRateForCurrency(ctx, models.NGN, models.USD)
		if err != nil {
			logger.Log.Errorw("failed to fetch NGN/USD rate", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(RatesErrorResponse{Error: "Failed to retrieve exchange rates"})
			return
		}
		gbp, err := svc.GetExchangeRateForCurrency(ctx, models.NGN, models.GBP)
		if err != nil {
			logger.Log.Errorw("failed to fetch NGN/GBP rate", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(RatesErrorResponse{Error: "Failed to retrieve exchange rates"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(RatesResponse{
			NGN: 1.0,
			USD: float64(usd),
			GBP: float64(gbp),
		})
	}
}
