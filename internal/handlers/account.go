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
)

// AccountTokener defines only the methods needed by this handler.
type AccountTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// AccountCreator defines the interface that the service must implement.
type AccountCreator interface {
	CreateVirtualAccount(ctx context.Context, userID uuid.UUID, currency string) (*models.WalletDB, error)
}

// AccountRequest represents the JSON body for creating a virtual account
// swagger:model AccountRequest
type AccountRequest struct {
	// Currency
	// required: true
	// default: NGN
	Currency string `json:"currency"`
}

// AccountResponse represents a successful virtual account creation response
// swagger:model AccountResponse
type AccountResponse struct {
	// Success message
	// default: Virtual account created
	Message string `json:"message"`

	// Wallet identifier
	WalletID string `json:"wallet_id"`

	// Account number to fund the wallet
	AccountNumber string `json:"account_number"`

	// Bank carrying the account
	BankName string `json:"bank_name"`
}

// AccountErrorResponse represents an error response for account creation
// swagger:model AccountErrorResponse
type AccountErrorResponse struct {
	// Error message
	// default: Unsupported currency
	Error string `json:"error"`
}

// NewCreateAccountHandler returns an HTTP handler for creating a virtual
// deposit account.
// @Summary Create virtual account
// @Description Provisions a provider virtual account for deposits and links it to the user's wallet. Registers the user as a provider customer on first use.
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body handlers.AccountRequest true "Account Request"
// @Success 201 {object} handlers.AccountResponse "Virtual account created"
// @Failure 400 {object} handlers.AccountErrorResponse "Unsupported currency"
// @Failure 401 {object} handlers.AccountErrorResponse "Unauthorized"
// @Router /wallet/account [post]
// @Security BearerAuth
func NewCreateAccountHandler(
	svc AccountCreator,
	tokenGetter AccountTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(AccountErrorResponse{Error: "Unauthorized"})
			return
		}

		claims, err := tokenGetter.GetClaims(ctx, tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(AccountErrorResponse{Error: "Unauthorized"})
			return
		}

		var req AccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(AccountErrorResponse{Error: "Invalid request body"})
			return
		}

		wallet, err := svc.CreateVirtualAccount(ctx, claims.UserID, req.Currency)
		if err != nil {
			var apiErr *facades.APIError
			switch {
			case errors.Is(err, models.ErrUnsupportedCurrency):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(AccountErrorResponse{Error: "Unsupported currency"})
			case errors.As(err, &apiErr):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(AccountErrorResponse{Error: apiErr.Message})
			default:
				logger.Log.Errorw("failed to create virtual account", "userID", claims.UserID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(AccountErrorResponse{Error: "Internal server error"})
			}
			return
		}

		resp := AccountResponse{
			Message:  "Virtual account created",
			WalletID: wallet.WalletID.String(),
		}
		if wallet.AccountNumber != nil {
			resp.AccountNumber = *wallet.AccountNumber
		}
		if wallet.BankName != nil {
			resp.BankName = *wallet.BankName
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(resp)
	}
}
