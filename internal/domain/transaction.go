package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ClientID identifies a client account.
type ClientID uint16

// TxID identifies a deposit or withdrawal. Dispute, resolve and chargeback
// records carry the TxID of the record they act on, not an id of their own.
type TxID uint32

// TransactionType is the kind of a ledger event.
type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeDispute    TransactionType = "dispute"
	TypeResolve    TransactionType = "resolve"
	TypeChargeback TransactionType = "chargeback"
)

// ParseTransactionType validates a raw type field.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(s); t {
	case TypeDeposit, TypeWithdrawal, TypeDispute, TypeResolve, TypeChargeback:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTransactionType, s)
}

// RequiresAmount reports whether records of this type must carry an amount.
// Only deposits and withdrawals move a caller-specified amount; the dispute
// lifecycle kinds reference an earlier record instead.
func (t TransactionType) RequiresAmount() bool {
	return t == TypeDeposit || t == TypeWithdrawal
}

// Disputable reports whether records of this type can be disputed later.
func (t TransactionType) Disputable() bool {
	return t == TypeDeposit || t == TypeWithdrawal
}

// Transaction is one immutable ledger event. Build it through NewTransaction
// so validation happens exactly once, at construction.
type Transaction struct {
	Type      TransactionType
	ClientID  ClientID
	TxID      TxID
	Amount    decimal.Decimal
	HasAmount bool
}

// NewTransaction validates a raw parsed row and returns the typed record.
// amount is nil when the source row carried no amount field. A non-nil error
// means the record must be dropped; it never aborts a run.
func NewTransaction(typ TransactionType, clientID ClientID, txID TxID, amount *decimal.Decimal) (Transaction, error) {
	if _, err := ParseTransactionType(string(typ)); err != nil {
		return Transaction{}, err
	}

	if typ.RequiresAmount() {
		if amount == nil {
			return Transaction{}, fmt.Errorf("%w: %s tx %d", ErrMissingAmount, typ, txID)
		}
		if amount.IsNegative() {
			return Transaction{}, fmt.Errorf("%w: %s tx %d amount %s", ErrNegativeAmount, typ, txID, amount)
		}

		return Transaction{
			Type:      typ,
			ClientID:  clientID,
			TxID:      txID,
			Amount:    *amount,
			HasAmount: true,
		}, nil
	}

	if amount != nil {
		return Transaction{}, fmt.Errorf("%w: %s tx %d", ErrUnexpectedAmount, typ, txID)
	}

	return Transaction{Type: typ, ClientID: clientID, TxID: txID}, nil
}
