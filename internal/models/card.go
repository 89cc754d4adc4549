package models

import (
	"time"

	"github.com/google/uuid"
)

// Card statuses
const (
	CardStatusActive   = "active"
	CardStatusInactive = "inactive"
	CardStatusBlocked  = "blocked"
)

// VirtualCardDB represents a virtual card row. The card is a spending
// instrument over its wallet; it carries no balance of its own.
type VirtualCardDB struct {
	CardID         uuid.UUID `json:"card_id" db:"card_id"`                   // Unique card identifier
	WalletID       uuid.UUID `json:"wallet_id" db:"wallet_id"`               // Owning wallet
	ProviderCardID string    `json:"provider_card_id" db:"provider_card_id"` // Card id at the provider
	MaskedPan      string    `json:"masked_pan" db:"masked_pan"`             // Masked card number
	Currency       string    `json:"currency" db:"currency"`                 // Card currency
	Status         string    `json:"status" db:"status"`                     // active, inactive or blocked
	Frozen         bool      `json:"frozen" db:"frozen"`                     // Frozen flag
	CreatedAt      time.Time `json:"created_at" db:"created_at"`             // Creation timestamp
}
