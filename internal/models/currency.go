package models

import "errors"

// Supported currency codes
const (
	NGN = "NGN"
	USD = "USD"
	GBP = "GBP"
)

// ErrUnsupportedCurrency is returned for a currency outside NGN/USD/GBP.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// ValidCurrency reports whether the code is one of the supported currencies.
func ValidCurrency(currency string) bool {
	switch currency {
	case NGN, USD, GBP:
		return true
	}
	return false
}

// CurrencyBalance represents per-currency balances of a wallet
// swagger:model CurrencyBalance
type CurrencyBalance struct {
	// Balance in NGN
	// example: 500.0
	NGN float64 `json:"NGN"`

	// Balance in USD
	// example: 100.0
	USD float64 `json:"USD"`

	// Balance in GBP
	// example: 50.0
	GBP float64 `json:"GBP"`
}
