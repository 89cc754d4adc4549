package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-provider-wallet/internal/facades"
	"github.com/sbilibin2017/gw-provider-wallet/internal/jwt"
	"github.com/sbilibin2017/gw-provider-wallet/internal/logger"
	"github.com/sbilibin2017/gw-provider-wallet/internal/models"
	"github.com/sbilibin2017/gw-provider-wallet/internal/services"
)

// WithdrawTokener defines only the methods needed by this handler.
type WithdrawTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// Withdrawer defines the interface that the service must implement.
type Withdrawer interface {
	Withdraw(ctx context.Context, userID uuid.UUID, amount models.Amount, currency string, destination services.WithdrawalDestination, description string) (*models.TransactionDB, error)
}

// WithdrawRequest represents the JSON body for withdrawing funds
// swagger:model WithdrawRequest
type WithdrawRequest struct {
	// Amount to withdraw, in major units
	// required: true
	// default: 100.0
	Amount float64 `json:"amount"`

	// Currency
	// required: true
	// default: NGN
	Currency string `json:"currency"`

	// Receiving bank code
	// required: true
	// default: 044
	BankCode string `json:"bank_code"`

	// Receiving account number
	// required: true
	// default: 0123456789
	AccountNumber string `json:"account_number"`

	// Receiving account name
	// default: John Doe
	AccountName string `json:"account_name"`

	// Withdrawal description
	// default: Wallet withdrawal
	Description string `json:"description"`
}

// WithdrawResponse represents a successful withdrawal response
// swagger:model WithdrawResponse
type WithdrawResponse struct {
	// Success message
	// default: Withdrawal initiated
	Message string `json:"message"`

	// Transaction id of the pending withdrawal
	TransactionID string `json:"transaction_id"`

	// Provider transfer reference
	Reference string `json:"reference"`
}

// WithdrawErrorResponse represents an error response for withdrawal
// swagger:model WithdrawErrorResponse
type WithdrawErrorResponse struct {
	// Error message
	// default: Insufficient funds
	Error string `json:"error"`
}

// NewWithdrawHandler returns an HTTP handler for withdrawing funds.
// @Summary Withdraw funds
// @Description Debits the wallet and initiates a bank transfer at the provider. The transaction stays pending until the provider webhook settles it.
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body handlers.WithdrawRequest true "Withdraw Request"
// @Success 200 {object} handlers.WithdrawResponse "Withdrawal initiated"
// @Failure 400 {object} handlers.WithdrawErrorResponse "Insufficient funds or invalid request"
// @Failure 401 {object} handlers.WithdrawErrorResponse "Unauthorized"
// @Router /wallet/withdraw [post]
// @Security BearerAuth
func NewWithdrawHandler(
	svc Withdrawer,
	tokenGetter WithdrawTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(WithdrawErrorResponse{Error: "Unauthorized"})
			return
		}

		claims, err := tokenGetter.GetClaims(ctx, tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(WithdrawErrorResponse{Error: "Unauthorized"})
			return
		}

		var req WithdrawRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(WithdrawErrorResponse{Error: "Invalid request body"})
			return
		}
		if req.Amount <= 0 || req.BankCode == "" || req.AccountNumber == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(WithdrawErrorResponse{Error: "Invalid amount or destination"})
			return
		}

		tx, err := svc.Withdraw(ctx, claims.UserID, models.AmountFromMajor(req.Amount), req.Currency,
			services.WithdrawalDestination{
				BankCode:      req.BankCode,
				AccountNumber: req.AccountNumber,
				AccountName:   req.AccountName,
			}, req.Description)
		if err != nil {
			var apiErr *facades.APIError
			switch {
			case errors.Is(err, services.ErrInsufficientFunds):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(WithdrawErrorResponse{Error: "Insufficient funds"})
			case errors.Is(err, models.ErrUnsupportedCurrency), errors.Is(err, services.ErrWalletNotFound):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(WithdrawErrorResponse{Error: "Invalid amount or destination"})
			case errors.As(err, &apiErr):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(WithdrawErrorResponse{Error: apiErr.Message})
			default:
				logger.Log.Errorw("withdrawal failed", "userID", claims.UserID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(WithdrawErrorResponse{Error: "Internal server error"})
			}
			return
		}

		reference := ""
		if tx.Reference != nil {
			reference = *tx.Reference
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(WithdrawResponse{
			Message:       "Withdrawal initiated",
			TransactionID: tx.TransactionID.String(),
			Reference:     reference,
		})
	}
}
