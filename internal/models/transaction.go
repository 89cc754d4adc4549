package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction types
const (
	TxTypeDeposit    = "deposit"
	TxTypeWithdrawal = "withdrawal"
	TxTypeTransfer   = "transfer"
)

// Transaction statuses
const (
	TxStatusPending = "pending"
	TxStatusSuccess = "success"
	TxStatusFailed  = "failed"
)

// TransactionDB represents an immutable balance-affecting record. A row that
// reached success or failed is never updated; corrections are new rows.
type TransactionDB struct {
	TransactionID uuid.UUID `json:"transaction_id" db:"transaction_id"` // Unique transaction identifier
	UserID        uuid.UUID `json:"user_id" db:"user_id"`               // Owning user
	Amount        Amount    `json:"amount" db:"amount"`                 // Amount in minor units
	Currency      string    `json:"currency" db:"currency"`             // Currency code
	Type          string    `json:"type" db:"type"`                     // deposit, withdrawal or transfer
	Status        string    `json:"status" db:"status"`                 // pending, success or failed
	Reference     *string   `json:"reference" db:"reference"`           // Provider reference or event id
	Description   string    `json:"description" db:"description"`       // Human-readable description
	CreatedAt     time.Time `json:"created_at" db:"created_at"`         // Creation timestamp
}

// TransactionEvent is the Kafka payload published for settled transactions.
type TransactionEvent struct {
	TransactionID string `json:"transaction_id"` // Unique identifier of the transaction
	Timestamp     int64  `json:"timestamp"`      // Unix timestamp (seconds) of the event
	AmountMinor   int64  `json:"amount_minor"`   // Amount in minor units
	Currency      string `json:"currency"`       // Currency code
	UserID        string `json:"user_id"`        // Identifier of the affected user
	Operation     string `json:"operation"`      // deposit, withdrawal or transfer
}
