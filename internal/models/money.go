package models

import (
	"fmt"
	"math"
)

// Amount is a monetary value in minor units (kobo, cents, pence) with two
// implied decimal places. Balance arithmetic is integer-only; floats appear
// only at the JSON boundary.
type Amount int64

// AmountFromMajor converts a major-unit value (e.g. 500.00) to minor units.
func AmountFromMajor(major float64) Amount {
	return Amount(math.Round(major * 100))
}

// Major returns the value in major units for API responses.
func (a Amount) Major() float64 {
	return float64(a) / 100
}

// Minor returns the raw minor-unit value as sent to the provider.
func (a Amount) Minor() int64 {
	return int64(a)
}

// IsPositive returns true if the amount is greater than zero.
func (a Amount) IsPositive() bool {
	return a > 0
}

// String renders the amount with two decimals, e.g. "500.00".
func (a Amount) String() string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
