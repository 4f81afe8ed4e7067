package domain

import "github.com/shopspring/decimal"

// EntryStatus is a disputable entry's position in the dispute lifecycle.
// Transitions: normal -> disputed -> {resolved, charged_back}. Resolved and
// charged_back are terminal, so a transaction is disputed at most once.
type EntryStatus string

const (
	StatusNormal      EntryStatus = "normal"
	StatusDisputed    EntryStatus = "disputed"
	StatusResolved    EntryStatus = "resolved"
	StatusChargedBack EntryStatus = "charged_back"
)

// DisputableEntry records a successfully applied deposit or withdrawal so
// later dispute, resolve and chargeback records can reference it by id.
// Only Status changes after creation.
type DisputableEntry struct {
	TxID   TxID
	Type   TransactionType
	Amount decimal.Decimal
	Status EntryStatus
}

// Dispute transitions the entry from normal to disputed.
func (e *DisputableEntry) Dispute() error {
	if e.Status != StatusNormal {
		return ErrEntryNotDisputable
	}
	e.Status = StatusDisputed
	return nil
}

// Resolve transitions the entry from disputed to resolved.
func (e *DisputableEntry) Resolve() error {
	if e.Status != StatusDisputed {
		return ErrEntryNotDisputed
	}
	e.Status = StatusResolved
	return nil
}

// Chargeback transitions the entry from disputed to charged_back.
func (e *DisputableEntry) Chargeback() error {
	if e.Status != StatusDisputed {
		return ErrEntryNotDisputed
	}
	e.Status = StatusChargedBack
	return nil
}

// DisputeLedger indexes one client's disputable transactions by id. Each
// ledger is exclusively owned by a single client engine, so it needs no
// synchronization. Transaction ids are scoped per client: the same id on two
// different clients refers to two unrelated entries.
type DisputeLedger struct {
	entries map[TxID]*DisputableEntry
}

// NewDisputeLedger creates an empty ledger.
func NewDisputeLedger() *DisputeLedger {
	return &DisputeLedger{entries: make(map[TxID]*DisputableEntry)}
}

// Has reports whether txID is already recorded.
func (l *DisputeLedger) Has(txID TxID) bool {
	_, ok := l.entries[txID]
	return ok
}

// Record appends an entry for a freshly applied deposit or withdrawal.
func (l *DisputeLedger) Record(txID TxID, typ TransactionType, amount decimal.Decimal) error {
	if l.Has(txID) {
		return ErrDuplicateTransaction
	}
	l.entries[txID] = &DisputableEntry{
		TxID:   txID,
		Type:   typ,
		Amount: amount,
		Status: StatusNormal,
	}
	return nil
}

// Get returns the entry for txID.
func (l *DisputeLedger) Get(txID TxID) (*DisputableEntry, error) {
	e, ok := l.entries[txID]
	if !ok {
		return nil, ErrUnknownTransaction
	}
	return e, nil
}

// Len returns the number of recorded entries.
func (l *DisputeLedger) Len() int {
	return len(l.entries)
}
