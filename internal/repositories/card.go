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

const cardColumns = `card_id, wallet_id, provider_card_id, masked_pan, currency, status, frozen, created_at`

// CardWriterRepository handles virtual card write operations.
type CardWriterRepository struct {
	db *sqlx.DB
}

func NewCardWriterRepository(db *sqlx.DB) *CardWriterRepository {
	return &CardWriterRepository{db: db}
}

// Save inserts a newly issued card.
func (r *CardWriterRepository) Save(ctx context.Context, card *models.VirtualCardDB) error {
	query := `
		INSERT INTO virtual_cards (card_id, wallet_id, provider_card_id, masked_pan, currency, status, frozen, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	args := []any{card.CardID, card.WalletID, card.ProviderCardID, card.MaskedPan, card.Currency, card.Status, card.Frozen}

	_, err := r.db.ExecContext(ctx, query, args...)

	logger.Log.Infow("card insert",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	return err
}

// SetFrozen flips the frozen flag after the provider confirmed the change.
func (r *CardWriterRepository) SetFrozen(ctx context.Context, cardID uuid.UUID, frozen bool) error {
	query := `
		UPDATE virtual_cards
		SET frozen = $2
		WHERE card_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, cardID, frozen)

	logger.Log.Infow("card set frozen",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{cardID, frozen},
		"error", err,
	)

	return err
}

// SetStatus updates the card lifecycle status.
func (r *CardWriterRepository) SetStatus(ctx context.Context, providerCardID, status string) error {
	query := `
		UPDATE virtual_cards
		SET status = $2
		WHERE provider_card_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, providerCardID, status)

	logger.Log.Infow("card set status",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{providerCardID, status},
		"error", err,
	)

	return err
}

// CardReaderRepository handles virtual card read operations.
type CardReaderRepository struct {
	db *sqlx.DB
}

func NewCardReaderRepository(db *sqlx.DB) *CardReaderRepository {
	return &CardReaderRepository{db: db}
}

// GetByID returns a card by its primary key, or nil when absent.
func (r *CardReaderRepository) GetByID(ctx context.Context, cardID uuid.UUID) (*models.VirtualCardDB, error) {
	const query = `
		SELECT ` + cardColumns + `
		FROM virtual_cards
		WHERE card_id = $1
	`

	var card models.VirtualCardDB
	err := r.db.GetContext(ctx, &card, query, cardID)

	logger.Log.Infow("card select",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{cardID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// ListByWallet returns all cards issued against a wallet.
func (r *CardReaderRepository) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]models.VirtualCardDB, error) {
	const query = `
		SELECT ` + cardColumns + `
		FROM virtual_cards
		WHERE wallet_id = $1
		ORDER BY created_at
	`

	var cards []models.VirtualCardDB
	err := r.db.SelectContext(ctx, &cards, query, walletID)

	logger.Log.Infow("card list",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{walletID},
		"result", len(cards),
		"error", err,
	)

	return cards, err
}
