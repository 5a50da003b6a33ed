package domain

import "errors"

// Sentinel errors for domain-level error handling. The engine converts
// these into rejection notices; the handler layer maps them to HTTP
// status codes.
var (
	ErrDuplicateTransaction = errors.New("duplicate_transaction")
	ErrTransactionNotFound  = errors.New("transaction_not_found")
	ErrClientMismatch       = errors.New("client_mismatch")
	ErrInvalidTransition    = errors.New("invalid_transition")
	ErrInsufficientFunds    = errors.New("insufficient_funds")
	ErrAccountLocked        = errors.New("account_locked")
	ErrAmountOverflow       = errors.New("amount_overflow")
)
