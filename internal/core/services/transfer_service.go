package services

import (
	"context"
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

// transferService moves money between two internal accounts. It only
// pre-validates; the authoritative insufficient-funds check happens in the
// repository under the source account's row lock.
type transferService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewTransferService creates a new TransferService.
func NewTransferService(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.TransferSvcFacade {
	return &transferService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
	}
}

// Ensure transferService implements the portssvc.TransferSvcFacade interface
var _ portssvc.TransferSvcFacade = (*transferService)(nil)

func (s *transferService) Transfer(ctx context.Context, req dto.CreateTransferRequest, userID string) (*domain.Transaction, error) {
	if req.SourceAccountID == req.DestinationAccountID {
		return nil, fmt.Errorf("%w: cannot transfer an account to itself", apperrors.ErrValidation)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}

	source, err := s.accountRepo.FindAccountByID(ctx, req.SourceAccountID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, req.DestinationAccountID); err != nil {
		return nil, err
	}

	// Early check for a friendlier error. The repository re-checks under the
	// row lock, which is the check that actually holds.
	if source.Balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: balance %s is less than transfer amount %s",
			apperrors.ErrInsufficientFunds, source.Balance.String(), req.Amount.String())
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:        uuid.NewString(),
		Type:                 domain.Transfer,
		Amount:               req.Amount,
		Description:          req.Description,
		ReferenceType:        domain.RefManual,
		TransactionDate:      domain.DateOnly(req.TransferDate),
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, txn.BalanceChanges()); err != nil {
		s.LogError(ctx, err, "Failed to save transfer",
			slog.String("source_account_id", req.SourceAccountID),
			slog.String("destination_account_id", req.DestinationAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", req.Amount.String()))
	return &txn, nil
}
