package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-provider-wallet/internal/logger"
)

// WebhookEventRepository is the dedup ledger for provider events. The event
// id is the table's primary key, so concurrent admits for the same id race on
// the unique constraint and exactly one insert wins.
type WebhookEventRepository struct {
	db *sqlx.DB
}

func NewWebhookEventRepository(db *sqlx.DB) *WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

// Admit records the event id before any business-logic effect. It returns
// admitted=false when the id was seen before, in which case the caller must
// acknowledge the delivery without reprocessing.
func (r *WebhookEventRepository) Admit(ctx context.Context, eventID, eventType string) (bool, error) {
	query := `
		INSERT INTO webhook_events (event_id, event_type, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (event_id) DO NOTHING
	`

	res, err := r.db.ExecContext(ctx, query, eventID, eventType)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("webhook event admit",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{eventID, eventType},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}
