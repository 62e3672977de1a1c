package services

import (
	"context"

	"github.com/sapataria/caixa_backend/internal/core/domain"
	"github.com/sapataria/caixa_backend/internal/dto"
)

// TransferSvcFacade moves money between two internal accounts as a single
// atomic operation. The overall money total never changes.
type TransferSvcFacade interface {
	// Transfer debits the source and credits the destination, recording one
	// TRANSFER ledger entry. Fails with apperrors.ErrInsufficientFunds when
	// the source balance does not cover the amount.
	Transfer(ctx context.Context, req dto.CreateTransferRequest, userID string) (*domain.Transaction, error)
}
