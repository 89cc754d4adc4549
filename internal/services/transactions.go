package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-provider-wallet/internal/logger"
	"github.com/sbilibin2017/gw-provider-wallet/internal/models"
)

// TransactionReader defines transaction read operations used by services.
type TransactionReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID, currency *string) ([]models.TransactionDB, error)
}

// TransactionService exposes the transaction history.
type TransactionService struct {
	reader TransactionReader
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(reader TransactionReader) *TransactionService {
	return &TransactionService{reader: reader}
}

// List returns the user's transactions, newest first, optionally filtered by
// currency.
func (svc *TransactionService) List(ctx context.Context, userID uuid.UUID, currency *string) ([]models.TransactionDB, error) {
	if currency != nil && !models.ValidCurrency(*currency) {
		return nil, models.ErrUnsupportedCurrency
	}

	txs, err := svc.reader.ListByUser(ctx, userID, currency)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "userID", userID, "error", err)
		return nil, err
	}
	return txs, nil
}
