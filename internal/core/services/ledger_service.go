package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sapataria/caixa_backend/internal/apperrors"
	"github.com/sapataria/caixa_backend/internal/core/domain"
	portsrepo "github.com/sapataria/caixa_backend/internal/core/ports/repositories"
	portssvc "github.com/sapataria/caixa_backend/internal/core/ports/services"
	"github.com/sapataria/caixa_backend/internal/dto"
)

// ledgerService provides the core transaction ledger operations.
type ledgerService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// requireActiveAccount loads the account and rejects inactive ones for new entries.
func (s *ledgerService) requireActiveAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
	}
	return account, nil
}

func (s *ledgerService) RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	if _, err := s.requireActiveAccount(ctx, req.AccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		Type:            req.Type,
		Amount:          req.Amount,
		Description:     req.Description,
		Category:        req.Category,
		ReferenceType:   domain.RefManual,
		ReferenceNumber: req.ReferenceNumber,
		PaymentMethod:   req.PaymentMethod,
		TransactionDate: domain.DateOnly(req.TransactionDate),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	switch req.Type {
	case domain.Income:
		txn.DestinationAccountID = req.AccountID
	case domain.Expense:
		txn.SourceAccountID = req.AccountID
	default:
		return nil, fmt.Errorf("%w: manual entries must be INCOME or EXPENSE", apperrors.ErrValidation)
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, txn.BalanceChanges()); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)))
	return &txn, nil
}

// RecordReferencedTransaction persists an entry generated by an order, sale or
// bill workflow. The caller supplies the reference identity; everything else
// follows the same validation and atomicity path as a manual entry.
func (s *ledgerService) RecordReferencedTransaction(ctx context.Context, txn domain.Transaction, userID string) (*domain.Transaction, error) {
	if txn.ReferenceType == domain.RefManual || txn.ReferenceType == "" {
		return nil, fmt.Errorf("%w: referenced entries require an order, sale or bill reference", apperrors.ErrValidation)
	}
	if txn.ReferenceID == "" {
		return nil, fmt.Errorf("%w: reference ID is required", apperrors.ErrValidation)
	}

	accountID := txn.DestinationAccountID
	if txn.Type == domain.Expense {
		accountID = txn.SourceAccountID
	}
	if _, err := s.requireActiveAccount(ctx, accountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if txn.TransactionID == "" {
		txn.TransactionID = uuid.NewString()
	}
	txn.TransactionDate = domain.DateOnly(txn.TransactionDate)
	txn.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, txn.BalanceChanges()); err != nil {
		s.LogError(ctx, err, "Failed to save referenced transaction",
			slog.String("reference_type", string(txn.ReferenceType)),
			slog.String("reference_id", txn.ReferenceID))
		return nil, err
	}

	s.LogInfo(ctx, "Referenced transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("reference_type", string(txn.ReferenceType)))
	return &txn, nil
}

func (s *ledgerService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *ledgerService) ListTransactionsByDateRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	from = domain.DateOnly(from)
	to = domain.DateOnly(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: date range end precedes start", apperrors.ErrValidation)
	}
	txns, err := s.txnRepo.ListTransactionsByDateRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions by date range")
		return nil, err
	}
	return txns, nil
}

func (s *ledgerService) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	txns, token, err := s.txnRepo.ListTransactionsByAccountID(ctx, accountID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account transactions", slog.String("account_id", accountID))
		return nil, nil, err
	}
	return txns, token, nil
}

func (s *ledgerService) ListTransactionsByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.FindTransactionsByReference(ctx, refType, refID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions by reference",
			slog.String("reference_type", string(refType)),
			slog.String("reference_id", refID))
		return nil, err
	}
	return txns, nil
}

func (s *ledgerService) UpdateManualTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !existing.IsManual() {
		return nil, fmt.Errorf("%w: only manual entries can be edited, this one belongs to %s %s",
			apperrors.ErrForbidden, existing.ReferenceType, existing.ReferenceID)
	}
	// Transfers carry the insufficient-funds guarantee, which only the creation
	// path checks under the row lock. Rewriting one here could overdraw the
	// source, so a wrong transfer is corrected with a compensating transfer.
	if existing.Type == domain.Transfer {
		return nil, fmt.Errorf("%w: transfer entries cannot be edited, record a compensating transfer instead",
			apperrors.ErrForbidden)
	}

	updated := *existing
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.PaymentMethod != nil {
		updated.PaymentMethod = *req.PaymentMethod
	}
	if req.ReferenceNumber != nil {
		updated.ReferenceNumber = *req.ReferenceNumber
	}
	if req.TransactionDate != nil {
		updated.TransactionDate = domain.DateOnly(*req.TransactionDate)
	}
	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = userID

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	// The rewrite nets out as: undo the old entry's balance effect, apply the new one.
	changes := mergeBalanceChanges(existing.ReversalChanges(), updated.BalanceChanges())

	if err := s.txnRepo.UpdateTransaction(ctx, updated, changes); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return &updated, nil
}

func (s *ledgerService) DeleteManualTransaction(ctx context.Context, transactionID string, userID string) error {
	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if !existing.IsManual() {
		return fmt.Errorf("%w: only manual entries can be deleted directly, this one belongs to %s %s",
			apperrors.ErrForbidden, existing.ReferenceType, existing.ReferenceID)
	}
	// Deleting a transfer would debit the destination without a funds check,
	// the same bypass an edit would open.
	if existing.Type == domain.Transfer {
		return fmt.Errorf("%w: transfer entries cannot be deleted, record a compensating transfer instead",
			apperrors.ErrForbidden)
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID, existing.ReversalChanges(), userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *ledgerService) DeleteTransactionsByReference(ctx context.Context, refType domain.ReferenceType, refID string, userID string) (int, error) {
	if refType == domain.RefManual {
		return 0, fmt.Errorf("%w: manual entries are deleted individually", apperrors.ErrValidation)
	}
	count, err := s.txnRepo.DeleteTransactionsByReference(ctx, refType, refID, userID, time.Now().UTC())
	if err != nil {
		s.LogError(ctx, err, "Failed to delete transactions by reference",
			slog.String("reference_type", string(refType)),
			slog.String("reference_id", refID))
		return 0, err
	}

	s.LogInfo(ctx, "Referenced transactions deleted",
		slog.String("reference_type", string(refType)),
		slog.String("reference_id", refID),
		slog.Int("count", count))
	return count, nil
}

// mergeBalanceChanges sums two delta maps, dropping accounts that net to zero.
func mergeBalanceChanges(a, b map[string]decimal.Decimal) map[string]decimal.Decimal {
	merged := make(map[string]decimal.Decimal, len(a)+len(b))
	for accountID, delta := range a {
		merged[accountID] = merged[accountID].Add(delta)
	}
	for accountID, delta := range b {
		merged[accountID] = merged[accountID].Add(delta)
	}
	for accountID, delta := range merged {
		if delta.IsZero() {
			delete(merged, accountID)
		}
	}
	return merged
}
