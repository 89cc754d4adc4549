package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-provider-wallet/internal/facades"
	"github.com/sbilibin2017/gw-provider-wallet/internal/jwt"
	"github.com/sbilibin2017/gw-provider-wallet/internal/logger"
	"github.com/sbilibin2017/gw-provider-wallet/internal/models"
	"github.com/sbilibin2017/gw-provider-wallet/internal/services"
)

// CardTokener defines only the methods needed by the card handlers.
type CardTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// CardManager defines the interface that the card service must implement.
type CardManager interface {
	IssueCard(ctx context.Context, userID uuid.UUID, currency, brand string) (*models.VirtualCardDB, error)
	FundCard(ctx context.Context, userID, cardID uuid.UUID, amount models.Amount) error
	WithdrawFromCard(ctx context.Context, userID, cardID uuid.UUID, amount models.Amount) error
	SetFrozen(ctx context.Context, userID, cardID uuid.UUID, frozen bool) error
	ListCards(ctx context.Context, userID uuid.UUID, currency string) ([]models.VirtualCardDB, error)
}

// IssueCardRequest represents the JSON body for issuing a virtual card
// swagger:model IssueCardRequest
type IssueCardRequest struct {
	// Currency
	// required: true
	// default: USD
	Currency string `json:"currency"`

	// Card brand
	// default: VISA
	Brand string `json:"brand"`
}

// CardResponse represents a virtual card
// swagger:model CardResponse
type CardResponse struct {
	// Card identifier
	CardID string `json:"card_id"`

	// Masked card number
	MaskedPan string `json:"masked_pan"`

	// Card currency
	Currency string `json:"currency"`

	// Card lifecycle status
	Status string `json:"status"`

	// Frozen flag
	Frozen bool `json:"frozen"`
}

// CardAmountRequest represents the JSON body for funding or withdrawing
// swagger:model CardAmountRequest
type CardAmountRequest struct {
	// Amount in major units
	// required: true
	// default: 50.0
	Amount float64 `json:"amount"`
}

// CardMessageResponse represents a successful card operation response
// swagger:model CardMessageResponse
type CardMessageResponse struct {
	// Success message
	// default: ok
	Message string `json:"message"`
}

// CardErrorResponse represents an error response for card operations
// swagger:model CardErrorResponse
type CardErrorResponse struct {
	// Error message
	// default: Card not found
	Error string `json:"error"`
}

func cardResponse(card *models.VirtualCardDB) CardResponse {
	return CardResponse{
		CardID:    card.CardID.String(),
		MaskedPan: card.MaskedPan,
		Currency:  card.Currency,
		Status:    card.Status,
		Frozen:    card.Frozen,
	}
}

func cardClaims(w http.ResponseWriter, r *http.Request, tokenGetter CardTokener) (*jwt.Claims, bool) {
	ctx := r.Context()

	tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(CardErrorResponse{Error: "Unauthorized"})
		return nil, false
	}
	claims, err := tokenGetter.GetClaims(ctx, tokenStr)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(CardErrorResponse{Error: "Unauthorized"})
		return nil, false
	}
	return claims, true
}

func writeCardError(w http.ResponseWriter, err error) {
	var apiErr *facades.APIError
	switch {
	case errors.Is(err, services.ErrCardNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(CardErrorResponse{Error: "Card not found"})
	case errors.Is(err, services.ErrInsufficientFunds):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(CardErrorResponse{Error: "Insufficient funds"})
	case errors.Is(err, models.ErrUnsupportedCurrency), errors.Is(err, services.ErrWalletNotFound):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(CardErrorResponse{Error: "Unsupported currency or missing wallet"})
	case errors.As(err, &apiErr):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(CardErrorResponse{Error: apiErr.Message})
	default:
		logger.Log.Errorw("card operation failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(CardErrorResponse{Error: "Internal server error"})
	}
}

// NewIssueCardHandler returns an HTTP handler for issuing a virtual card.
// @Summary Issue virtual card
// @Description Issues a virtual card against the user's wallet. The card activates once the provider confirms issuance.
// @Tags cards
// @Accept json
// @Produce json
// @Param request body handlers.IssueCardRequest true "Issue Card Request"
// @Success 201 {object} handlers.CardResponse "Card issued"
// @Failure 400 {object} handlers.CardErrorResponse "Unsupported currency or missing wallet"
// @Failure 401 {object} handlers.CardErrorResponse "Unauthorized"
// @Router /cards [post]
// @Security BearerAuth
func NewIssueCardHandler(svc CardManager, tokenGetter CardTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := cardClaims(w, r, tokenGetter)
		if !ok {
			return
		}

		var req IssueCardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CardErrorResponse{Error: "Invalid request body"})
			return
		}

		card, err := svc.IssueCard(r.Context(), claims.UserID, req.Currency, req.Brand)
		if err != nil {
			writeCardError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(cardResponse(card))
	}
}

// NewListCardsHandler returns an HTTP handler for listing the user's cards.
// @Summary List virtual cards
// @Description Lists the virtual cards issued against the user's wallet for a currency.
// @Tags cards
// @Produce json
// @Param currency query string true "Currency" default(USD)
// @Success 200 {array} handlers.CardResponse "Cards"
// @Failure 401 {object} handlers.CardErrorResponse "Unauthorized"
// @Router /cards [get]
// @Security BearerAuth
func NewListCardsHandler(svc CardManager, tokenGetter CardTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := cardClaims(w, r, tokenGetter)
		if !ok {
			return
		}

		currency := r.URL.Query().Get("currency")
		cards, err := svc.ListCards(r.Context(), claims.UserID, currency)
		if err != nil {
			writeCardError(w, err)
			return
		}

		resp := make([]CardResponse, 0, len(cards))
		for i := range cards {
			resp = append(resp, cardResponse(&cards[i]))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}

func parseCardID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	cardID, err := uuid.Parse(chi.URLParam(r, "cardID"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(CardErrorResponse{Error: "Invalid card id"})
		return uuid.Nil, false
	}
	return cardID, true
}

// NewFundCardHandler returns an HTTP handler for moving wallet funds onto a card.
// @Summary Fund card
// @Description Moves funds from the wallet onto the card. The wallet is debited before the provider transfer.
// @Tags cards
// @Accept json
// @Produce json
// @Param cardID path string true "Card ID"
// @Param request body handlers.CardAmountRequest true "Amount"
// @Success 200 {object} handlers.CardMessageResponse "Card funded"
// @Failure 400 {object} handlers.CardErrorResponse "Insufficient funds"
// @Failure 401 {object} handlers.CardErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.CardErrorResponse "Card not found"
// @Router /cards/{cardID}/fund [post]
// @Security BearerAuth
func NewFundCardHandler(svc CardManager, tokenGetter CardTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := cardClaims(w, r, tokenGetter)
		if !ok {
			return
		}
		cardID, ok := parseCardID(w, r)
		if !ok {
			return
		}

		var req CardAmountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Amount <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CardErrorResponse{Error: "Invalid amount"})
			return
		}

		if err := svc.FundCard(r.Context(), claims.UserID, cardID, models.AmountFromMajor(req.Amount)); err != nil {
			writeCardError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(CardMessageResponse{Message: "Card funded"})
	}
}

// NewWithdrawFromCardHandler returns an HTTP handler for moving card funds
// back to the wallet.
// @Summary Withdraw from card
// @Description Moves funds from the card back to the wallet after the provider confirms the card-side debit.
// @Tags cards
// @Accept json
// @Produce json
// @Param cardID path string true "Card ID"
// @Param request body handlers.CardAmountRequest true "Amount"
// @Success 200 {object} handlers.CardMessageResponse "Withdrawn from card"
// @Failure 400 {object} handlers.CardErrorResponse "Invalid amount"
// @Failure 401 {object} handlers.CardErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.CardErrorResponse "Card not found"
// @Router /cards/{cardID}/withdraw [post]
// @Security BearerAuth
func NewWithdrawFromCardHandler(svc CardManager, tokenGetter CardTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := cardClaims(w, r, tokenGetter)
		if !ok {
			return
		}
		cardID, ok := parseCardID(w, r)
		if !ok {
			return
		}

		var req CardAmountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Amount <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CardErrorResponse{Error: "Invalid amount"})
			return
		}

		if err := svc.WithdrawFromCard(r.Context(), claims.UserID, cardID, models.AmountFromMajor(req.Amount)); err != nil {
			writeCardError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(CardMessageResponse{Message: "Withdrawn from card"})
	}
}

// NewFreezeCardHandler returns an HTTP handler for freezing or unfreezing a card.
// @Summary Freeze or unfreeze card
// @Description Suspends or resumes spending on a card. The provider change is confirmed before the local flag flips.
// @Tags cards
// @Produce json
// @Param cardID path string true "Card ID"
// @Param action path string true "freeze or unfreeze"
// @Success 200 {object} handlers.CardMessageResponse "Freeze state changed"
// @Failure 401 {object} handlers.CardErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.CardErrorResponse "Card not found"
// @Router /cards/{cardID}/{action} [patch]
// @Security BearerAuth
func NewFreezeCardHandler(svc CardManager, tokenGetter CardTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := cardClaims(w, r, tokenGetter)
		if !ok {
			return
		}
		cardID, ok := parseCardID(w, r)
		if !ok {
			return
		}

		var frozen bool
		switch chi.URLParam(r, "action") {
		case "freeze":
			frozen = true
		case "unfreeze":
			frozen = false
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(CardErrorResponse{Error: "Unknown action"})
			return
		}

		if err := svc.SetFrozen(r.Context(), claims.UserID, cardID, frozen); err != nil {
			writeCardError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(CardMessageResponse{Message: "Freeze state changed"})
	}
}
