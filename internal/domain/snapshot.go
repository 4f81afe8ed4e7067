package domain

import "github.com/shopspring/decimal"

// AmountScale is the fixed decimal scale amounts are rounded to when a
// snapshot is emitted. Intermediate arithmetic keeps full precision.
const AmountScale = 4

// Snapshot is the final state reported for one client at run end.
type Snapshot struct {
	ClientID  ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}
