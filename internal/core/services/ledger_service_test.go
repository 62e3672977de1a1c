package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sapataria/caixa_backend/internal/apperrors"
	"github.com/sapataria/caixa_backend/internal/core/domain"
	portssvc "github.com/sapataria/caixa_backend/internal/core/ports/services"
	"github.com/sapataria/caixa_backend/internal/core/services"
	"github.com/sapataria/caixa_backend/internal/dto"
)

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.LedgerSvcFacade
	activeAccount   domain.Account
	inactiveAccount domain.Account
	userID          string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewLedgerService(suite.mockTxnRepo, suite.mockAccountRepo)
	suite.userID = uuid.NewString()

	suite.activeAccount = domain.Account{
		AccountID: uuid.NewString(),
		Name:      "Caixa Loja",
		IsActive:  true,
	}
	suite.inactiveAccount = domain.Account{
		AccountID: uuid.NewString(),
		Name:      "Banco Encerrado",
		IsActive:  false,
	}
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestRecordTransaction_Income() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:            domain.Income,
		Amount:          decimal.NewFromInt(150),
		Description:     "Troca de sola",
		Category:        "servicos",
		PaymentMethod:   domain.PaymentMethodCash,
		TransactionDate: time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC),
		AccountID:       suite.activeAccount.AccountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.activeAccount.AccountID).Return(&suite.activeAccount, nil).Once()

	var savedChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	txn, err := suite.service.RecordTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(domain.RefManual, txn.ReferenceType)
	suite.Equal(suite.activeAccount.AccountID, txn.DestinationAccountID)
	suite.Empty(txn.SourceAccountID)
	// The timestamp collapses to the calendar date.
	suite.Equal(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), txn.TransactionDate)
	suite.True(savedChanges[suite.activeAccount.AccountID].Equal(decimal.NewFromInt(150)))

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_Expense() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:            domain.Expense,
		Amount:          decimal.NewFromInt(80),
		Description:     "Compra de cola",
		TransactionDate: time.Now(),
		AccountID:       suite.activeAccount.AccountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.activeAccount.AccountID).Return(&suite.activeAccount, nil).Once()

	var savedChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	txn, err := suite.service.RecordTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(suite.activeAccount.AccountID, txn.SourceAccountID)
	suite.Empty(txn.DestinationAccountID)
	suite.True(savedChanges[suite.activeAccount.AccountID].Equal(decimal.NewFromInt(-80)))
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_TransferTypeRejected() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:            domain.Transfer,
		Amount:          decimal.NewFromInt(10),
		Description:     "nope",
		TransactionDate: time.Now(),
		AccountID:       suite.activeAccount.AccountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.activeAccount.AccountID).Return(&suite.activeAccount, nil).Once()

	txn, err := suite.service.RecordTransaction(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_InactiveAccount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:            domain.Income,
		Amount:          decimal.NewFromInt(10),
		Description:     "entrada",
		TransactionDate: time.Now(),
		AccountID:       suite.inactiveAccount.AccountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.inactiveAccount.AccountID).Return(&suite.inactiveAccount, nil).Once()

	txn, err := suite.service.RecordTransaction(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
}

func (suite *LedgerServiceTestSuite) TestRecordReferencedTransaction_Success() {
	ctx := context.Background()
	orderID := uuid.NewString()
	txn := domain.Transaction{
		Type:                 domain.Income,
		Amount:               decimal.NewFromInt(90),
		Description:          "Ordem de servico finalizada",
		ReferenceType:        domain.RefOrder,
		ReferenceID:          orderID,
		PaymentMethod:        domain.PaymentMethodCash,
		TransactionDate:      time.Now(),
		DestinationAccountID: suite.activeAccount.AccountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.activeAccount.AccountID).Return(&suite.activeAccount, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).Return(nil).Once()

	saved, err := suite.service.RecordReferencedTransaction(ctx, txn, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(saved.TransactionID)
	suite.Equal(orderID, saved.ReferenceID)
	suite.Equal(suite.userID, saved.CreatedBy)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordReferencedTransaction_ManualRejected() {
	ctx := context.Background()
	txn := domain.Transaction{
		Type:                 domain.Income,
		Amount:               decimal.NewFromInt(90),
		Description:          "entrada",
		ReferenceType:        domain.RefManual,
		ReferenceID:          uuid.NewString(),
		TransactionDate:      time.Now(),
		DestinationAccountID: suite.activeAccount.AccountID,
	}

	saved, err := suite.service.RecordReferencedTransaction(ctx, txn, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(saved)
}

func (suite *LedgerServiceTestSuite) TestRecordReferencedTransaction_MissingReferenceID() {
	ctx := context.Background()
	txn := domain.Transaction{
		Type:                 domain.Income,
		Amount:               decimal.NewFromInt(90),
		Description:          "entrada",
		ReferenceType:        domain.RefSale,
		TransactionDate:      time.Now(),
		DestinationAccountID: suite.activeAccount.AccountID,
	}

	saved, err := suite.service.RecordReferencedTransaction(ctx, txn, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(saved)
}

func (suite *LedgerServiceTestSuite) TestUpdateManualTransaction_RewritesBalances() {
	ctx := context.Background()
	txnID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID:        txnID,
		Type:                 domain.Income,
		Amount:               decimal.NewFromInt(100),
		Description:          "Conserto",
		ReferenceType:        domain.RefManual,
		TransactionDate:      domain.DateOnly(time.Now()),
		DestinationAccountID: suite.activeAccount.AccountID,
	}
	newAmount := decimal.NewFromInt(130)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(existing, nil).Once()

	var appliedChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			appliedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	updated, err := suite.service.UpdateManualTransaction(ctx, txnID, dto.UpdateTransactionRequest{Amount: &newAmount}, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))
	// Net effect of undoing 100 and applying 130.
	suite.Len(appliedChanges, 1)
	suite.True(appliedChanges[suite.activeAccount.AccountID].Equal(decimal.NewFromInt(30)))

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestUpdateManualTransaction_UnchangedAmountNetsToZero() {
	ctx := context.Background()
	txnID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID:        txnID,
		Type:                 domain.Income,
		Amount:               decimal.NewFromInt(100),
		Description:          "Conserto",
		ReferenceType:        domain.RefManual,
		TransactionDate:      domain.DateOnly(time.Now()),
		DestinationAccountID: suite.activeAccount.AccountID,
	}
	newDescription := "Conserto de bolsa"

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(existing, nil).Once()

	var appliedChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			appliedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	updated, err := suite.service.UpdateManualTransaction(ctx, txnID, dto.UpdateTransactionRequest{Description: &newDescription}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newDescription, updated.Description)
	suite.Empty(appliedChanges) // amount untouched, no balance delta
}

func (suite *LedgerServiceTestSuite) TestUpdateManualTransaction_ReferencedEntryForbidden() {
	ctx := context.Background()
	txnID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID:        txnID,
		Type:                 domain.Income,
		Amount:               decimal.NewFromInt(100),
		Description:          "Venda",
		ReferenceType:        domain.RefSale,
		ReferenceID:          uuid.NewString(),
		DestinationAccountID: suite.activeAccount.AccountID,
	}
	newAmount := decimal.NewFromInt(1)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateManualTransaction(ctx, txnID, dto.UpdateTransactionRequest{Amount: &newAmount}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(updated)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestUpdateManualTransaction_TransferEntryRejected() {
	ctx := context.Background()
	txnID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID:        txnID,
		Type:                 domain.Transfer,
		Amount:               decimal.NewFromInt(100),
		Description:          "Sangria do caixa",
		ReferenceType:        domain.RefManual,
		SourceAccountID:      uuid.NewString(),
		DestinationAccountID: uuid.NewString(),
	}
	// Raising the amount would debit the source without the locked funds check
	// that only the creation path performs.
	newAmount := decimal.NewFromInt(1000000)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateManualTransaction(ctx, txnID, dto.UpdateTransactionRequest{Amount: &newAmount}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(updated)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeleteManualTransaction_TransferEntryRejected() {
	ctx := context.Background()
	txnID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID:        txnID,
		Type:                 domain.Transfer,
		Amount:               decimal.NewFromInt(100),
		Description:          "Sangria do caixa",
		ReferenceType:        domain.RefManual,
		SourceAccountID:      uuid.NewString(),
		DestinationAccountID: uuid.NewString(),
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(existing, nil).Once()

	err := suite.service.DeleteManualTransaction(ctx, txnID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeleteManualTransaction_Success() {
	ctx := context.Background()
	txnID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID:        txnID,
		Type:                 domain.Income,
		Amount:               decimal.NewFromInt(100),
		Description:          "Conserto",
		ReferenceType:        domain.RefManual,
		DestinationAccountID: suite.activeAccount.AccountID,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(existing, nil).Once()

	var reversal map[string]decimal.Decimal
	suite.mockTxnRepo.On("DeleteTransaction", ctx, txnID, mock.AnythingOfType("map[string]decimal.Decimal"), suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			reversal = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	err := suite.service.DeleteManualTransaction(ctx, txnID, suite.userID)

	suite.Require().NoError(err)
	suite.True(reversal[suite.activeAccount.AccountID].Equal(decimal.NewFromInt(-100)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeleteManualTransaction_ReferencedEntryForbidden() {
	ctx := context.Background()
	txnID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID:   txnID,
		Type:            domain.Expense,
		Amount:          decimal.NewFromInt(50),
		Description:     "Conta de luz",
		ReferenceType:   domain.RefBill,
		ReferenceID:     uuid.NewString(),
		SourceAccountID: suite.activeAccount.AccountID,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(existing, nil).Once()

	err := suite.service.DeleteManualTransaction(ctx, txnID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeleteTransactionsByReference_Success() {
	ctx := context.Background()
	orderID := uuid.NewString()

	suite.mockTxnRepo.On("DeleteTransactionsByReference", ctx, domain.RefOrder, orderID, suite.userID, mock.AnythingOfType("time.Time")).Return(2, nil).Once()

	count, err := suite.service.DeleteTransactionsByReference(ctx, domain.RefOrder, orderID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, count)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeleteTransactionsByReference_ManualRejected() {
	ctx := context.Background()

	count, err := suite.service.DeleteTransactionsByReference(ctx, domain.RefManual, uuid.NewString(), suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Zero(count)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransactionsByReference", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestListTransactionsByDateRange_InvertedRange() {
	ctx := context.Background()
	from := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	txns, err := suite.service.ListTransactionsByDateRange(ctx, from, to)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txns)
}

func (suite *LedgerServiceTestSuite) TestListTransactionsByAccount_UnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	txns, token, err := suite.service.ListTransactionsByAccount(ctx, accountID, 20, nil)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(txns)
	suite.Nil(token)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
