package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sapataria/caixa_backend/internal/apperrors"
	"github.com/sapataria/caixa_backend/internal/core/domain"
	portsrepo "github.com/sapataria/caixa_backend/internal/core/ports/repositories"
	portssvc "github.com/sapataria/caixa_backend/internal/core/ports/services"
	"github.com/sapataria/caixa_backend/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
}

// NewAccountService creates a new account service.
// The transaction repository is needed to record the opening balance entry.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if req.OpeningBalance != nil && req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID: uuid.NewString(),
		Name:      name,
		BankRef:   req.BankRef,
		Balance:   decimal.Zero,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// A non-zero opening balance is recorded as a regular ledger entry so the
	// cached balance stays derivable from the ledger alone. Account row and
	// opening entry commit together; a failure leaves neither behind.
	if req.OpeningBalance != nil && req.OpeningBalance.IsPositive() {
		opening := domain.Transaction{
			TransactionID:        uuid.NewString(),
			Type:                 domain.Income,
			Amount:               *req.OpeningBalance,
			Description:          "Saldo inicial",
			ReferenceType:        domain.RefInitialBalance,
			ReferenceID:          account.AccountID,
			TransactionDate:      domain.DateOnly(now),
			DestinationAccountID: account.AccountID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := opening.Validate(); err != nil {
			return nil, err
		}
		if err := s.txnRepo.SaveAccountWithOpeningEntry(ctx, account, opening); err != nil {
			s.LogError(ctx, err, "Failed to save account with opening balance",
				slog.String("account_name", name))
			return nil, err
		}
		account.Balance = *req.OpeningBalance
	} else {
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			s.LogError(ctx, err, "Failed to save account", slog.String("account_name", name))
			return nil, err
		}
	}

	s.LogInfo(ctx, "Account created successfully", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByName(ctx, name)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by name", slog.String("account_name", name))
		}
		return nil, err
	}
	return account, nil
}

// GetOrCreateAccountByName lazily creates named accounts on first use. A
// concurrent creator losing the race falls back to reading the winner's row.
func (s *accountService) GetOrCreateAccountByName(ctx context.Context, name string, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByName(ctx, name)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	created, err := s.CreateAccount(ctx, dto.CreateAccountRequest{Name: name}, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.accountRepo.FindAccountByName(ctx, name)
		}
		return nil, err
	}
	return created, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		newName := strings.TrimSpace(*req.Name)
		if newName == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		// Reserved accounts are addressed by name; renaming them would break
		// every collaborator that looks them up.
		if domain.IsProtectedAccountName(account.Name) && newName != account.Name {
			return nil, fmt.Errorf("%w: %s cannot be renamed", apperrors.ErrProtectedAccount, account.Name)
		}
		account.Name = newName
	}
	if req.BankRef != nil {
		account.BankRef = *req.BankRef
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if domain.IsProtectedAccountName(account.Name) {
		return fmt.Errorf("%w: %s cannot be deactivated", apperrors.ErrProtectedAccount, account.Name)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrAccountHasBalance) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		}
		return err
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
