package domain

import "errors"

var (
	// Record validation errors. The record is dropped before it reaches an
	// engine.
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	ErrMissingAmount          = errors.New("amount required for this transaction type")
	ErrUnexpectedAmount       = errors.New("amount not allowed for this transaction type")
	ErrNegativeAmount         = errors.New("amount must not be negative")

	// Rule errors. The transaction is a no-op and the run continues.
	ErrAccountLocked           = errors.New("account is locked")
	ErrInsufficientFunds       = errors.New("insufficient available funds")
	ErrInsufficientHeld        = errors.New("insufficient held funds")
	ErrDuplicateTransaction    = errors.New("transaction id already recorded")
	ErrUnknownTransaction      = errors.New("referenced transaction not found")
	ErrEntryNotDisputable      = errors.New("transaction is not in a disputable state")
	ErrEntryNotDisputed        = errors.New("transaction is not under dispute")
	ErrWithdrawalNotDisputable = errors.New("withdrawal disputes are disabled")
	ErrClientMismatch          = errors.New("transaction belongs to another client")
)

// RejectReason maps a rejection error to a stable label usable in metrics
// and diagnostics.
func RejectReason(err error) string {
	switch {
	case errors.Is(err, ErrUnknownTransactionType):
		return "unknown_type"
	case errors.Is(err, ErrMissingAmount):
		return "missing_amount"
	case errors.Is(err, ErrUnexpectedAmount):
		return "unexpected_amount"
	case errors.Is(err, ErrNegativeAmount):
		return "negative_amount"
	case errors.Is(err, ErrAccountLocked):
		return "account_locked"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrInsufficientHeld):
		return "insufficient_held"
	case errors.Is(err, ErrDuplicateTransaction):
		return "duplicate_transaction"
	case errors.Is(err, ErrUnknownTransaction):
		return "unknown_transaction"
	case errors.Is(err, ErrEntryNotDisputable):
		return "not_disputable"
	case errors.Is(err, ErrEntryNotDisputed):
		return "not_disputed"
	case errors.Is(err, ErrWithdrawalNotDisputable):
		return "withdrawal_disputes_disabled"
	case errors.Is(err, ErrClientMismatch):
		return "client_mismatch"
	default:
		return "other"
	}
}
