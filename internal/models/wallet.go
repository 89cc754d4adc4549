package models

import (
	"time"

	"github.com/google/uuid"
)

// WalletDB represents a wallet row in the database.
// Balances are stored per currency in minor units; the settlement currency
// only marks which balance the linked virtual account funds.
type WalletDB struct {
	WalletID      uuid.UUID `json:"wallet_id" db:"wallet_id"`            // Unique wallet identifier
	UserID        uuid.UUID `json:"user_id" db:"user_id"`                // Identifier of the wallet's owner
	Currency      string    `json:"currency" db:"currency"`              // Settlement currency code (NGN, USD, GBP)
	NGN           Amount    `json:"ngn" db:"ngn"`                        // NGN balance, minor units
	USD           Amount    `json:"usd" db:"usd"`                        // USD balance, minor units
	GBP           Amount    `json:"gbp" db:"gbp"`                        // GBP balance, minor units
	AccountID     *string   `json:"account_id" db:"maplerad_account_id"` // Provider virtual account id
	AccountNumber *string   `json:"account_number" db:"account_number"`  // Provisioned account number
	BankName      *string   `json:"bank_name" db:"bank_name"`            // Provisioned bank name
	CreatedAt     time.Time `json:"created_at" db:"created_at"`          // Timestamp when the wallet was created
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`          // Timestamp of the last wallet update
}

// Balance returns the balance for a currency with exhaustive matching.
func (w *WalletDB) Balance(currency string) (Amount, error) {
	switch currency {
	case NGN:
		return w.NGN, nil
	case USD:
		return w.USD, nil
	case GBP:
		return w.GBP, nil
	}
	return 0, ErrUnsupportedCurrency
}
