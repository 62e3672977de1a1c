package repositories

import (
	"context"
	"time"

	"github.com/sapataria/caixa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for ledger data.
type TransactionReader interface {
	// FindTransactionByID retrieves a single ledger entry.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByDateRange retrieves all entries whose business date
	// falls in [from, to] inclusive, ordered by date ascending then creation
	// order.
	ListTransactionsByDateRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error)

	// ListTransactionsByAccountID retrieves a cursor-paginated account
	// statement, newest first.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindTransactionsByReference retrieves every entry caused by one external
	// domain object.
	FindTransactionsByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]domain.Transaction, error)

	// SumCashEffects returns the net signed effect of all cash-method income
	// and expense entries created at or after the given instant. Used for cash
	// session reconciliation; transfers are internal movements and excluded.
	SumCashEffects(ctx context.Context, since time.Time) (decimal.Decimal, error)
}

// TransactionWriter defines the balance-affecting write operations. Every
// method runs as a single database transaction: affected account rows are
// locked FOR UPDATE, balance deltas applied, and ledger rows inserted or
// removed before commit. A failure leaves every account untouched.
type TransactionWriter interface {
	// SaveTransaction persists a validated ledger entry and applies its
	// balance deltas. For transfer entries it re-checks the source balance
	// under the row lock and fails with apperrors.ErrInsufficientFunds when
	// the transfer would overdraw the source.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// SaveAccountWithOpeningEntry inserts a new account together with its
	// opening-balance ledger entry in one database transaction, so a failure
	// leaves neither behind.
	SaveAccountWithOpeningEntry(ctx context.Context, account domain.Account, opening domain.Transaction) error

	// UpdateTransaction rewrites the mutable fields of a manual entry and
	// applies the compensating balance deltas in the same transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// DeleteTransaction removes one entry, applying the given reversal deltas
	// before the row disappears.
	DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error

	// DeleteTransactionsByReference removes every entry caused by one external
	// domain object, reversing the aggregate balance effect. Returns the
	// number of rows removed.
	DeleteTransactionsByReference(ctx context.Context, refType domain.ReferenceType, refID string, userID string, now time.Time) (int, error)
}

// TransactionRepositoryFacade combines all ledger repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
