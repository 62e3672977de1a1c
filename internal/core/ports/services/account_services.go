package services

import (
	"context"

	"github.com/sapataria/caixa_backend/internal/core/domain"
	"github.com/sapataria/caixa_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByName retrieves an account by its display name.
	GetAccountByName(ctx context.Context, name string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of active accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account. A non-zero opening balance also
	// writes an initial-balance income entry to the ledger.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// GetOrCreateAccountByName returns the account with the given name,
	// creating it with a zero balance when it does not exist yet. Used by
	// collaborators that address the reserved accounts by name.
	GetOrCreateAccountByName(ctx context.Context, name string, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive. Accounts holding a
	// non-zero balance and the reserved register accounts cannot be deactivated.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
