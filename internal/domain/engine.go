package domain

import "fmt"

// DisputePolicy configures the two dispute behaviors the rules leave open.
type DisputePolicy struct {
	// LockedAcceptsDisputes allows dispute, resolve and chargeback records
	// to apply to a locked account's pre-lock transactions. Deposits and
	// withdrawals are always rejected once an account is locked.
	LockedAcceptsDisputes bool

	// WithdrawalDisputes enables symmetric dispute of withdrawals: the
	// withdrawn amount is provisionally restored to available and marked
	// held until the dispute settles. When disabled, withdrawal entries are
	// not disputable.
	WithdrawalDisputes bool
}

// DefaultDisputePolicy matches the reference behavior: a locked account
// rejects everything, withdrawals are disputable.
func DefaultDisputePolicy() DisputePolicy {
	return DisputePolicy{WithdrawalDisputes: true}
}

// ClientEngine applies one client's transactions strictly in arrival order.
// It exclusively owns the client's account and dispute ledger, which is what
// lets engines for different clients run concurrently without locks.
type ClientEngine struct {
	account *Account
	ledger  *DisputeLedger
	policy  DisputePolicy
}

// NewClientEngine creates an engine with an empty account and ledger.
func NewClientEngine(clientID ClientID, policy DisputePolicy) *ClientEngine {
	return &ClientEngine{
		account: NewAccount(clientID),
		ledger:  NewDisputeLedger(),
		policy:  policy,
	}
}

// ClientID returns the client this engine is bound to.
func (e *ClientEngine) ClientID() ClientID {
	return e.account.ClientID
}

// Apply runs one transaction through the account state machine. A non-nil
// error means the transaction was rejected and account state is unchanged.
func (e *ClientEngine) Apply(tx Transaction) error {
	if tx.ClientID != e.account.ClientID {
		return ErrClientMismatch
	}

	switch tx.Type {
	case TypeDeposit:
		return e.deposit(tx)
	case TypeWithdrawal:
		return e.withdraw(tx)
	case TypeDispute:
		return e.dispute(tx)
	case TypeResolve:
		return e.resolve(tx)
	case TypeChargeback:
		return e.chargeback(tx)
	}
	return fmt.Errorf("%w: %q", ErrUnknownTransactionType, tx.Type)
}

// Snapshot renders the final account state at the emission scale.
func (e *ClientEngine) Snapshot() Snapshot {
	return Snapshot{
		ClientID:  e.account.ClientID,
		Available: e.account.Available.Round(AmountScale),
		Held:      e.account.Held.Round(AmountScale),
		Total:     e.account.Total().Round(AmountScale),
		Locked:    e.account.Locked,
	}
}

func (e *ClientEngine) deposit(tx Transaction) error {
	if e.account.Locked {
		return ErrAccountLocked
	}
	if err := e.ledger.Record(tx.TxID, TypeDeposit, tx.Amount); err != nil {
		return err
	}
	e.account.Credit(tx.Amount)
	return nil
}

func (e *ClientEngine) withdraw(tx Transaction) error {
	if e.account.Locked {
		return ErrAccountLocked
	}
	if e.ledger.Has(tx.TxID) {
		return ErrDuplicateTransaction
	}
	// insufficient funds must not leave an entry behind
	if err := e.account.Debit(tx.Amount); err != nil {
		return err
	}
	return e.ledger.Record(tx.TxID, TypeWithdrawal, tx.Amount)
}

func (e *ClientEngine) dispute(tx Transaction) error {
	if err := e.disputeAccess(); err != nil {
		return err
	}

	entry, err := e.ledger.Get(tx.TxID)
	if err != nil {
		return err
	}
	if entry.Type == TypeWithdrawal && !e.policy.WithdrawalDisputes {
		return ErrWithdrawalNotDisputable
	}
	if entry.Status != StatusNormal {
		return ErrEntryNotDisputable
	}

	// funds guards run before the status transition so a rejected dispute
	// leaves the entry untouched
	if entry.Type == TypeDeposit {
		if err := e.account.HoldFunds(entry.Amount); err != nil {
			return err
		}
	} else {
		e.account.HoldReversal(entry.Amount)
	}
	return entry.Dispute()
}

func (e *ClientEngine) resolve(tx Transaction) error {
	if err := e.disputeAccess(); err != nil {
		return err
	}

	entry, err := e.ledger.Get(tx.TxID)
	if err != nil {
		return err
	}
	if entry.Status != StatusDisputed {
		return ErrEntryNotDisputed
	}

	if entry.Type == TypeDeposit {
		if err := e.account.ReleaseFunds(entry.Amount); err != nil {
			return err
		}
	} else {
		if err := e.account.SettleReversal(entry.Amount); err != nil {
			return err
		}
	}
	return entry.Resolve()
}

func (e *ClientEngine) chargeback(tx Transaction) error {
	if err := e.disputeAccess(); err != nil {
		return err
	}

	entry, err := e.ledger.Get(tx.TxID)
	if err != nil {
		return err
	}
	if entry.Status != StatusDisputed {
		return ErrEntryNotDisputed
	}

	// the held amount is forfeited: a charged-back deposit leaves the
	// account, a charged-back withdrawal keeps the provisionally restored
	// amount available
	if err := e.account.Forfeit(entry.Amount); err != nil {
		return err
	}
	e.account.Lock()
	return entry.Chargeback()
}

func (e *ClientEngine) disputeAccess() error {
	if e.account.Locked && !e.policy.LockedAcceptsDisputes {
		return ErrAccountLocked
	}
	return nil
}
