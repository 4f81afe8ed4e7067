package domain

// EventType labels a diagnostic event emitted while a run processes records.
type EventType string

const (
	// EventRecordRejected marks a row that failed parsing or validation and
	// was dropped before reaching an engine.
	EventRecordRejected EventType = "record_rejected"
	// EventTransactionRejected marks a valid record that violated a business
	// rule and was applied as a no-op.
	EventTransactionRejected EventType = "transaction_rejected"
	// EventAccountLocked marks a chargeback locking an account.
	EventAccountLocked EventType = "account_locked"
)

// Event describes something the engine skipped or decided while processing.
// Events are diagnostics only; they never affect the run outcome.
type Event struct {
	Type     EventType
	ClientID ClientID
	TxID     TxID
	Kind     TransactionType
	Line     int
	Reason   string
	Err      error
}
