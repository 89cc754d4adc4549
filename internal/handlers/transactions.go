package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-provider-wallet/internal/jwt"
	"github.com/sbilibin2017/gw-provider-wallet/internal/logger"
	"github.com/sbilibin2017/gw-provider-wallet/internal/models"
)

// TransactionTokener defines only the methods needed by this handler.
type TransactionTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// TransactionLister defines the interface that the service must implement.
type TransactionLister interface {
	List(ctx context.Context, userID uuid.UUID, currency *string) ([]models.TransactionDB, error)
}

// TransactionResponse represents one transaction in the history
// swagger:model TransactionResponse
type TransactionResponse struct {
	// Transaction identifier
	TransactionID string `json:"transaction_id"`

	// Amount in major units
	// default: 100.0
	Amount float64 `json:"amount"`

	// Currency
	// default: NGN
	Currency string `json:"currency"`

	// deposit, withdrawal or transfer
	Type string `json:"type"`

	// pending, success or failed
	Status string `json:"status"`

	// Provider reference, if any
	Reference string `json:"reference,omitempty"`

	// Description
	Description string `json:"description"`

	// Creation time, RFC 3339
	CreatedAt string `json:"created_at"`
}

// TransactionsErrorResponse represents an error response for the history
// swagger:model TransactionsErrorResponse
type TransactionsErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`
}

// NewListTransactionsHandler returns an HTTP handler for the transaction history.
// @Summary List transactions
// @Description Returns the user's transactions, newest first, optionally filtered by currency.
// @Tags wallet
// @Produce json
// @Param currency query string false "Currency filter" default(NGN)
// @Success 200 {array} handlers.TransactionResponse "Transactions"
// @Failure 400 {object} handlers.TransactionsErrorResponse "Unsupported currency"
// @Failure 401 {object} handlers.TransactionsErrorResponse "Unauthorized"
// @Router /transactions [get]
// @Security BearerAuth
func NewListTransactionsHandler(
	svc TransactionLister,
	tokenGetter TransactionTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TransactionsErrorResponse{Error: "Unauthorized"})
			return
		}

		claims, err := tokenGetter.GetClaims(ctx, tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TransactionsErrorResponse{Error: "Unauthorized"})
			return
		}

		var currency *string
		if c := r.URL.Query().Get("currency"); c != "" {
			currency = &c
		}

		txs, err := svc.List(ctx, claims.UserID, currency)
		if err != nil {
			if errors.Is(err, models.ErrUnsupportedCurrency) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(TransactionsErrorResponse{Error: "Unsupported currency"})
				return
			}
			logger.Log.Errorw("failed to list transactions", "userID", claims.UserID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(TransactionsErrorResponse{Error: "Internal server error"})
			return
		}

		resp := make([]TransactionResponse, 0, len(txs))
		for _, tx := range txs {
			item := TransactionResponse{
				TransactionID: tx.TransactionID.String(),
				Amount:        tx.Amount.Major(),
				Currency:      tx.Currency,
				Type:          tx.Type,
				Status:        tx.Status,
				Description:   tx.Description,
				CreatedAt:     tx.CreatedAt.Format(time.RFC3339),
			}
			if tx.Reference != nil {
				item.Reference = *tx.Reference
			}
			resp = append(resp, item)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
