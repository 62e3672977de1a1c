package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapataria/caixa_backend/internal/core/domain"
)

func TestAttachRunningBalances(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("accumulates in the order given", func(t *testing.T) {
		// Deliberately not chronological: the replay follows list order,
		// not transaction dates.
		txns := []domain.Transaction{
			{
				TransactionID:   "txn-3",
				Type:            domain.Expense,
				Amount:          decimal.NewFromInt(30),
				SourceAccountID: "acc-1",
				TransactionDate: day(20),
			},
			{
				TransactionID:        "txn-1",
				Type:                 domain.Income,
				Amount:               decimal.NewFromInt(100),
				DestinationAccountID: "acc-1",
				TransactionDate:      day(10),
			},
			{
				TransactionID:        "txn-2",
				Type:                 domain.Transfer,
				Amount:               decimal.NewFromInt(50),
				SourceAccountID:      "acc-1",
				DestinationAccountID: "acc-2",
				TransactionDate:      day(15),
			},
		}

		rows := domain.AttachRunningBalances("acc-1", txns)

		require.Len(t, rows, 3)
		assert.Equal(t, "txn-3", rows[0].TransactionID)
		assert.True(t, rows[0].RunningBalance.Equal(decimal.NewFromInt(-30)))
		assert.Equal(t, "txn-1", rows[1].TransactionID)
		assert.True(t, rows[1].RunningBalance.Equal(decimal.NewFromInt(70)))
		assert.Equal(t, "txn-2", rows[2].TransactionID)
		assert.True(t, rows[2].RunningBalance.Equal(decimal.NewFromInt(20)))
	})

	t.Run("drops entries that do not touch the account", func(t *testing.T) {
		txns := []domain.Transaction{
			{
				TransactionID:        "txn-other",
				Type:                 domain.Income,
				Amount:               decimal.NewFromInt(80),
				DestinationAccountID: "acc-2",
				TransactionDate:      day(10),
			},
			{
				TransactionID:        "txn-mine",
				Type:                 domain.Income,
				Amount:               decimal.NewFromInt(25),
				DestinationAccountID: "acc-1",
				TransactionDate:      day(11),
			},
		}

		rows := domain.AttachRunningBalances("acc-1", txns)

		require.Len(t, rows, 1)
		assert.Equal(t, "txn-mine", rows[0].TransactionID)
		assert.True(t, rows[0].RunningBalance.Equal(decimal.NewFromInt(25)))
	})

	t.Run("empty input yields no rows", func(t *testing.T) {
		assert.Empty(t, domain.AttachRunningBalances("acc-1", nil))
	})
}
