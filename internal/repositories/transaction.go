package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-provider-wallet/internal/logger"
	"github.com/sbilibin2017/gw-provider-wallet/internal/models"
)

const transactionColumns = `transaction_id, user_id, amount, currency, type, status, reference, description, created_at`

// TransactionWriterRepository handles transaction write operations.
type TransactionWriterRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionWriterRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionWriterRepository {
	return &TransactionWriterRepository{db: db, txGetter: txGetter}
}

func (r *TransactionWriterRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new transaction record. Records are append-only.
func (r *TransactionWriterRepository) Save(ctx context.Context, tx *models.TransactionDB) error {
	query := `
		INSERT INTO transactions (transaction_id, user_id, amount, currency, type, status, reference, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	args := []any{tx.TransactionID, tx.UserID, tx.Amount, tx.Currency, tx.Type, tx.Status, tx.Reference, tx.Description}

	_, err := r.executor(ctx).ExecContext(ctx, query, args...)

	logger.Log.Infow("transaction insert",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	return err
}

// SettleByReference moves a pending transaction matched by provider reference
// to its final status. Rows already settled are left alone, keeping records
// immutable after success/failed. Returns nil when no pending row matched.
func (r *TransactionWriterRepository) SettleByReference(ctx context.Context, reference, status string) (*models.TransactionDB, error) {
	query := `
		UPDATE transactions
		SET status = $2
		WHERE reference = $1 AND status = 'pending'
		RETURNING ` + transactionColumns + `
	`

	var tx models.TransactionDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &tx, query, reference, status)

	logger.Log.Infow("transaction settle",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{reference, status},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// TransactionReaderRepository handles transaction read operations.
type TransactionReaderRepository struct {
	db *sqlx.DB
}

func NewTransactionReaderRepository(db *sqlx.DB) *TransactionReaderRepository {
	return &TransactionReaderRepository{db: db}
}

// ListByUser returns a user's transactions, newest first, optionally
// filtered by currency.
func (r *TransactionReaderRepository) ListByUser(ctx context.Context, userID uuid.UUID, currency *string) ([]models.TransactionDB, error) {
	const query = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		  AND ($2::VARCHAR IS NULL OR currency = $2)
		ORDER BY created_at DESC
	`

	var txs []models.TransactionDB
	err := r.db.SelectContext(ctx, &txs, query, userID, currency)

	logger.Log.Infow("transaction list",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, currency},
		"result", len(txs),
		"error", err,
	)

	return txs, err
}
