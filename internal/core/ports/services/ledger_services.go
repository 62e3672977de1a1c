package services

import (
	"context"
	"time"

	"github.com/sapataria/caixa_backend/internal/core/domain"
	"github.com/sapataria/caixa_backend/internal/dto"
)

// LedgerReaderSvc defines read operations over the transaction ledger
type LedgerReaderSvc interface {
	// GetTransactionByID retrieves a single ledger entry.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByDateRange retrieves all entries in [from, to] inclusive.
	ListTransactionsByDateRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error)

	// ListTransactionsByAccount retrieves a cursor-paginated account statement.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsByReference retrieves every entry caused by one external
	// domain object.
	ListTransactionsByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]domain.Transaction, error)
}

// LedgerWriterSvc defines the balance-affecting ledger operations
type LedgerWriterSvc interface {
	// RecordTransaction validates and persists a manual income or expense
	// entry, atomically applying its balance effect.
	RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// RecordReferencedTransaction persists an entry caused by an external
	// domain object (order, sale, bill). Used by the collaborating workflows.
	RecordReferencedTransaction(ctx context.Context, txn domain.Transaction, userID string) (*domain.Transaction, error)

	// UpdateManualTransaction rewrites a manual entry. Entries generated by
	// orders, sales or bills are rejected with apperrors.ErrForbidden, as
	// are transfers, whose funds check runs only on creation.
	UpdateManualTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// DeleteManualTransaction removes a manual entry, reversing its balance
	// effect. Non-manual entries and transfers are rejected with
	// apperrors.ErrForbidden.
	DeleteManualTransaction(ctx context.Context, transactionID string, userID string) error

	// DeleteTransactionsByReference removes every entry caused by one external
	// domain object, reversing the aggregate balance effect. Returns the
	// number of entries removed.
	DeleteTransactionsByReference(ctx context.Context, refType domain.ReferenceType, refID string, userID string) (int, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
