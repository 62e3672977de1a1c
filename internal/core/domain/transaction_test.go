package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sapataria/caixa_backend/internal/apperrors"
	"github.com/sapataria/caixa_backend/internal/core/domain"
)

func validIncome() domain.Transaction {
	return domain.Transaction{
		TransactionID:        "txn-1",
		Type:                 domain.Income,
		Amount:               decimal.NewFromInt(100),
		Description:          "Conserto de salto",
		ReferenceType:        domain.RefManual,
		TransactionDate:      domain.DateOnly(time.Now()),
		DestinationAccountID: "acc-1",
	}
}

func TestTransactionValidate(t *testing.T) {
	t.Run("valid income", func(t *testing.T) {
		assert.NoError(t, validIncome().Validate())
	})

	t.Run("zero amount", func(t *testing.T) {
		txn := validIncome()
		txn.Amount = decimal.Zero
		assert.ErrorIs(t, txn.Validate(), apperrors.ErrValidation)
	})

	t.Run("negative amount", func(t *testing.T) {
		txn := validIncome()
		txn.Amount = decimal.NewFromInt(-5)
		assert.ErrorIs(t, txn.Validate(), apperrors.ErrValidation)
	})

	t.Run("missing description", func(t *testing.T) {
		txn := validIncome()
		txn.Description = ""
		assert.ErrorIs(t, txn.Validate(), apperrors.ErrValidation)
	})

	t.Run("income without destination", func(t *testing.T) {
		txn := validIncome()
		txn.DestinationAccountID = ""
		assert.ErrorIs(t, txn.Validate(), apperrors.ErrValidation)
	})

	t.Run("income with source", func(t *testing.T) {
		txn := validIncome()
		txn.SourceAccountID = "acc-2"
		assert.ErrorIs(t, txn.Validate(), apperrors.ErrValidation)
	})

	t.Run("valid expense", func(t *testing.T) {
		txn := validIncome()
		txn.Type = domain.Expense
		txn.DestinationAccountID = ""
		txn.SourceAccountID = "acc-1"
		assert.NoError(t, txn.Validate())
	})

	t.Run("expense without source", func(t *testing.T) {
		txn := validIncome()
		txn.Type = domain.Expense
		txn.DestinationAccountID = ""
		assert.ErrorIs(t, txn.Validate(), apperrors.ErrValidation)
	})

	t.Run("expense with destination", func(t *testing.T) {
		txn := validIncome()
		txn.Type = domain.Expense
		txn.SourceAccountID = "acc-1"
		assert.ErrorIs(t, txn.Validate(), apperrors.ErrValidation)
	})

	t.Run("valid transfer", func(t *testing.T) {
		txn := validIncome()
		txn.Type = domain.Transfer
		txn.SourceAccountID = "acc-2"
		assert.NoError(t, txn.Validate())
	})

	t.Run("transfer missing an account", func(t *testing.T) {
		txn := validIncome()
		txn.Type = domain.Transfer
		assert.ErrorIs(t, txn.Validate(), apperrors.ErrValidation)
	})

	t.Run("transfer between same account", func(t *testing.T) {
		txn := validIncome()
		txn.Type = domain.Transfer
		txn.SourceAccountID = txn.DestinationAccountID
		assert.ErrorIs(t, txn.Validate(), apperrors.ErrValidation)
	})

	t.Run("unknown type", func(t *testing.T) {
		txn := validIncome()
		txn.Type = "REFUND"
		assert.ErrorIs(t, txn.Validate(), apperrors.ErrValidation)
	})
}

func TestTransactionSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(50)

	income := domain.Transaction{Type: domain.Income, Amount: amount}
	assert.True(t, income.SignedAmount().Equal(amount))

	expense := domain.Transaction{Type: domain.Expense, Amount: amount}
	assert.True(t, expense.SignedAmount().Equal(amount.Neg()))

	transfer := domain.Transaction{Type: domain.Transfer, Amount: amount}
	assert.True(t, transfer.SignedAmount().IsZero())
}

func TestTransactionEffectOn(t *testing.T) {
	txn := domain.Transaction{
		Type:                 domain.Transfer,
		Amount:               decimal.NewFromInt(30),
		SourceAccountID:      "acc-src",
		DestinationAccountID: "acc-dst",
	}

	assert.True(t, txn.EffectOn("acc-dst").Equal(decimal.NewFromInt(30)))
	assert.True(t, txn.EffectOn("acc-src").Equal(decimal.NewFromInt(-30)))
	assert.True(t, txn.EffectOn("acc-other").IsZero())
}

func TestTransactionBalanceChanges(t *testing.T) {
	t.Run("income credits destination", func(t *testing.T) {
		txn := validIncome()
		changes := txn.BalanceChanges()
		assert.Len(t, changes, 1)
		assert.True(t, changes["acc-1"].Equal(decimal.NewFromInt(100)))
	})

	t.Run("transfer debits source and credits destination", func(t *testing.T) {
		txn := domain.Transaction{
			Type:                 domain.Transfer,
			Amount:               decimal.NewFromInt(40),
			SourceAccountID:      "acc-src",
			DestinationAccountID: "acc-dst",
		}
		changes := txn.BalanceChanges()
		assert.Len(t, changes, 2)
		assert.True(t, changes["acc-src"].Equal(decimal.NewFromInt(-40)))
		assert.True(t, changes["acc-dst"].Equal(decimal.NewFromInt(40)))
	})

	t.Run("reversal negates every delta", func(t *testing.T) {
		txn := domain.Transaction{
			Type:                 domain.Transfer,
			Amount:               decimal.NewFromInt(40),
			SourceAccountID:      "acc-src",
			DestinationAccountID: "acc-dst",
		}
		reversal := txn.ReversalChanges()
		assert.True(t, reversal["acc-src"].Equal(decimal.NewFromInt(40)))
		assert.True(t, reversal["acc-dst"].Equal(decimal.NewFromInt(-40)))
	})
}

func TestTransactionFlags(t *testing.T) {
	manual := domain.Transaction{ReferenceType: domain.RefManual}
	assert.True(t, manual.IsManual())

	fromOrder := domain.Transaction{ReferenceType: domain.RefOrder}
	assert.False(t, fromOrder.IsManual())

	cash := domain.Transaction{PaymentMethod: domain.PaymentMethodCash}
	assert.True(t, cash.IsCash())

	card := domain.Transaction{PaymentMethod: "cartao"}
	assert.False(t, card.IsCash())
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	instant := time.Date(2025, 3, 14, 23, 45, 12, 500, loc)

	got := domain.DateOnly(instant)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), got)
}
