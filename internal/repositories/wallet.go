package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-provider-wallet/internal/logger"
	"github.com/sbilibin2017/gw-provider-wallet/internal/models"
)

// balanceColumn maps a currency code to its wallet balance column. The
// returned name is a compile-time constant, never user input.
func balanceColumn(currency string) (string, error) {
	switch currency {
	case models.NGN:
		return "ngn", nil
	case models.USD:
		return "usd", nil
	case models.GBP:
		return "gbp", nil
	}
	return "", models.ErrUnsupportedCurrency
}

// WalletWriterRepository handles wallet write operations
type WalletWriterRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewWalletWriterRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *WalletWriterRepository {
	return &WalletWriterRepository{db: db, txGetter: txGetter}
}

func (r *WalletWriterRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save upserts a wallet row, filling in the external account linkage once the
// provider provisions a virtual account. Balances are left untouched. When a
// concurrent create already took the (user_id, currency) slot, the surviving
// row's wallet_id is written back into wallet so the caller mutates the real
// row, and NULL linkage fields never overwrite existing ones.
func (r *WalletWriterRepository) Save(ctx context.Context, wallet *models.WalletDB) error {
	query := `
		INSERT INTO wallets (wallet_id, user_id, currency, maplerad_account_id, account_number, bank_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (user_id, currency)
		DO UPDATE SET maplerad_account_id = COALESCE(EXCLUDED.maplerad_account_id, wallets.maplerad_account_id),
		              account_number = COALESCE(EXCLUDED.account_number, wallets.account_number),
		              bank_name = COALESCE(EXCLUDED.bank_name, wallets.bank_name),
		              updated_at = NOW()
		RETURNING wallet_id
	`
	args := []any{wallet.WalletID, wallet.UserID, wallet.Currency, wallet.AccountID, wallet.AccountNumber, wallet.BankName}

	var walletID uuid.UUID
	err := sqlx.GetContext(ctx, r.executor(ctx), &walletID, query, args...)

	logger.Log.Infow("wallet upsert",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", walletID,
		"error", err,
	)

	if err != nil {
		return err
	}
	wallet.WalletID = walletID
	return nil
}

// Credit atomically increases a currency balance by amount (minor units).
// The increment runs inside the UPDATE so concurrent credits never lose updates.
func (r *WalletWriterRepository) Credit(ctx context.Context, walletID uuid.UUID, currency string, amount models.Amount) error {
	column, err := balanceColumn(currency)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE wallets
		SET %[1]s = %[1]s + $1, updated_at = NOW()
		WHERE wallet_id = $2
		RETURNING %[1]s
	`, column)

	var balance models.Amount
	err = sqlx.GetContext(ctx, r.executor(ctx), &balance, query, amount, walletID)

	logger.Log.Infow("wallet credit",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{walletID, currency, amount},
		"result", balance,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrWalletNotFound
	}
	return err
}

// Debit atomically decreases a currency balance, refusing to drive it
// negative. Returns ErrInsufficientBalance when the guard fails.
func (r *WalletWriterRepository) Debit(ctx context.Context, walletID uuid.UUID, currency string, amount models.Amount) error {
	column, err := balanceColumn(currency)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE wallets
		SET %[1]s = %[1]s - $1, updated_at = NOW()
		WHERE wallet_id = $2 AND %[1]s >= $1
		RETURNING %[1]s
	`, column)

	var balance models.Amount
	err = sqlx.GetContext(ctx, r.executor(ctx), &balance, query, amount, walletID)

	logger.Log.Infow("wallet debit",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{walletID, currency, amount},
		"result", balance,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrInsufficientBalance
	}
	return err
}

// WalletReaderRepository handles wallet read operations
type WalletReaderRepository struct {
	db *sqlx.DB
}

func NewWalletReaderRepository(db *sqlx.DB) *WalletReaderRepository {
	return &WalletReaderRepository{db: db}
}

// GetByUserAndCurrency returns the wallet whose settlement currency matches,
// or nil when the user has no such wallet.
func (r *WalletReaderRepository) GetByUserAndCurrency(ctx context.Context, userID uuid.UUID, currency string) (*models.WalletDB, error) {
	const query = `
		SELECT wallet_id, user_id, currency, ngn, usd, gbp, maplerad_account_id, account_number, bank_name, created_at, updated_at
		FROM wallets
		WHERE user_id = $1 AND currency = $2
	`

	var wallet models.WalletDB
	err := r.db.GetContext(ctx, &wallet, query, userID, currency)

	logger.Log.Infow("wallet select",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, currency},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetByID returns a wallet by its primary key, or nil when absent.
func (r *WalletReaderRepository) GetByID(ctx context.Context, walletID uuid.UUID) (*models.WalletDB, error) {
	const query = `
		SELECT wallet_id, user_id, currency, ngn, usd, gbp, maplerad_account_id, account_number, bank_name, created_at, updated_at
		FROM wallets
		WHERE wallet_id = $1
	`

	var wallet models.WalletDB
	err := r.db.GetContext(ctx, &wallet, query, walletID)

	logger.Log.Infow("wallet select",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{walletID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// ListByUser returns all wallets of a user.
func (r *WalletReaderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WalletDB, error) {
	const query = `
		SELECT wallet_id, user_id, currency, ngn, usd, gbp, maplerad_account_id, account_number, bank_name, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
		ORDER BY created_at
	`

	var wallets []models.WalletDB
	err := r.db.SelectContext(ctx, &wallets, query, userID)

	logger.Log.Infow("wallet list",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(wallets),
		"error", err,
	)

	return wallets, err
}
