package domain

import (
	"fmt"
	"time"

	"github.com/sapataria/caixa_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a money movement.
type TransactionType string

const (
	Income   TransactionType = "INCOME"
	Expense  TransactionType = "EXPENSE"
	Transfer TransactionType = "TRANSFER"
)

// ReferenceType identifies the external domain object that caused a transaction.
type ReferenceType string

const (
	RefManual         ReferenceType = "manual"
	RefOrder          ReferenceType = "order"
	RefSale           ReferenceType = "sale"
	RefBill           ReferenceType = "bill"
	RefInitialBalance ReferenceType = "initial_balance"
)

// PaymentMethodCash marks movements that passed through the physical drawer.
// Cash session reconciliation only counts transactions with this method.
const PaymentMethodCash = "dinheiro"

// Transaction is one immutable, dated money movement in the ledger.
// Amount is always a positive magnitude; the type and the two account fields
// determine its direction. Once written it is never mutated in place for
// amount/type/accounts except through the guarded manual-entry paths.
type Transaction struct {
	TransactionID        string
	Type                 TransactionType
	Amount               decimal.Decimal // positive magnitude
	Description          string
	Category             string
	ReferenceType        ReferenceType
	ReferenceID          string
	ReferenceNumber      string
	PaymentMethod        string
	TransactionDate      time.Time // calendar date, midnight UTC
	SourceAccountID      string    // set for EXPENSE and TRANSFER
	DestinationAccountID string    // set for INCOME and TRANSFER
	AuditFields
}

// Validate enforces the per-type invariants before a transaction may be persisted.
func (t Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if t.Description == "" {
		return fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	switch t.Type {
	case Income:
		if t.DestinationAccountID == "" {
			return fmt.Errorf("%w: income requires a destination account", apperrors.ErrValidation)
		}
		if t.SourceAccountID != "" {
			return fmt.Errorf("%w: income must not reference a source account", apperrors.ErrValidation)
		}
	case Expense:
		if t.SourceAccountID == "" {
			return fmt.Errorf("%w: expense requires a source account", apperrors.ErrValidation)
		}
		if t.DestinationAccountID != "" {
			return fmt.Errorf("%w: expense must not reference a destination account", apperrors.ErrValidation)
		}
	case Transfer:
		if t.SourceAccountID == "" || t.DestinationAccountID == "" {
			return fmt.Errorf("%w: transfer requires both accounts", apperrors.ErrValidation)
		}
		if t.SourceAccountID == t.DestinationAccountID {
			return fmt.Errorf("%w: transfer accounts must be distinct", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, t.Type)
	}
	return nil
}

// SignedAmount is the transaction's effect on the overall cash flow:
// income positive, expense negative, transfer zero (an internal movement).
func (t Transaction) SignedAmount() decimal.Decimal {
	switch t.Type {
	case Income:
		return t.Amount
	case Expense:
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// EffectOn returns the signed effect of the transaction on one account's balance.
func (t Transaction) EffectOn(accountID string) decimal.Decimal {
	effect := decimal.Zero
	if t.DestinationAccountID == accountID {
		effect = effect.Add(t.Amount)
	}
	if t.SourceAccountID == accountID {
		effect = effect.Sub(t.Amount)
	}
	return effect
}

// BalanceChanges returns the per-account balance deltas implied by the
// transaction. Destination credited, source debited; a transfer nets to zero
// across the two accounts.
func (t Transaction) BalanceChanges() map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal, 2)
	if t.DestinationAccountID != "" {
		changes[t.DestinationAccountID] = changes[t.DestinationAccountID].Add(t.Amount)
	}
	if t.SourceAccountID != "" {
		changes[t.SourceAccountID] = changes[t.SourceAccountID].Sub(t.Amount)
	}
	return changes
}

// ReversalChanges returns the deltas that undo the transaction's balance effect.
func (t Transaction) ReversalChanges() map[string]decimal.Decimal {
	changes := t.BalanceChanges()
	for accountID, delta := range changes {
		changes[accountID] = delta.Neg()
	}
	return changes
}

// IsManual reports whether the transaction was created by an operator directly,
// as opposed to being generated by an order, sale or bill workflow.
func (t Transaction) IsManual() bool {
	return t.ReferenceType == RefManual
}

// IsCash reports whether the movement passed through the physical cash drawer.
func (t Transaction) IsCash() bool {
	return t.PaymentMethod == PaymentMethodCash
}
