package domain

import "github.com/shopspring/decimal"

// Account is the per-client balance state. Available and Held never go
// negative; every mutator that could violate that rejects instead. Total is
// derived, not stored.
type Account struct {
	ClientID  ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

// NewAccount creates an empty, unlocked account.
func NewAccount(clientID ClientID) *Account {
	return &Account{
		ClientID:  clientID,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

// Total returns available plus held funds.
func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// Credit adds amount to available funds.
func (a *Account) Credit(amount decimal.Decimal) {
	a.Available = a.Available.Add(amount)
}

// Debit removes amount from available funds.
func (a *Account) Debit(amount decimal.Decimal) error {
	if amount.GreaterThan(a.Available) {
		return ErrInsufficientFunds
	}
	a.Available = a.Available.Sub(amount)
	return nil
}

// HoldFunds moves amount from available into held funds. Used when a deposit
// is disputed.
func (a *Account) HoldFunds(amount decimal.Decimal) error {
	if amount.GreaterThan(a.Available) {
		return ErrInsufficientFunds
	}
	a.Available = a.Available.Sub(amount)
	a.Held = a.Held.Add(amount)
	return nil
}

// ReleaseFunds moves amount from held back into available funds. Used when a
// deposit dispute is resolved.
func (a *Account) ReleaseFunds(amount decimal.Decimal) error {
	if amount.GreaterThan(a.Held) {
		return ErrInsufficientHeld
	}
	a.Held = a.Held.Sub(amount)
	a.Available = a.Available.Add(amount)
	return nil
}

// HoldReversal provisionally restores a withdrawn amount: it is credited to
// available and simultaneously marked held, pending resolution. Used when a
// withdrawal is disputed.
func (a *Account) HoldReversal(amount decimal.Decimal) {
	a.Available = a.Available.Add(amount)
	a.Held = a.Held.Add(amount)
}

// SettleReversal undoes HoldReversal: the provisionally restored amount is
// taken back from both available and held. Used when a withdrawal dispute is
// resolved.
func (a *Account) SettleReversal(amount decimal.Decimal) error {
	if amount.GreaterThan(a.Available) {
		return ErrInsufficientFunds
	}
	if amount.GreaterThan(a.Held) {
		return ErrInsufficientHeld
	}
	a.Available = a.Available.Sub(amount)
	a.Held = a.Held.Sub(amount)
	return nil
}

// Forfeit permanently removes amount from held funds. Used by chargebacks.
func (a *Account) Forfeit(amount decimal.Decimal) error {
	if amount.GreaterThan(a.Held) {
		return ErrInsufficientHeld
	}
	a.Held = a.Held.Sub(amount)
	return nil
}

// Lock marks the account locked. Locking is terminal for the run.
func (a *Account) Lock() {
	a.Locked = true
}
