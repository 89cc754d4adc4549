package repositories

import "errors"

var (
	// ErrWalletNotFound is returned when a balance mutation targets a wallet that does not exist.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrInsufficientBalance is returned when a debit would drive a balance negative.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrCustomerIDAssigned is returned when a provider customer id is already set for the user.
	ErrCustomerIDAssigned = errors.New("customer id already assigned")
)
