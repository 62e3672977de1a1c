package services_test

import (
	"context"
	"testing"

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
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	service         portssvc.AccountSvcFacade
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockTxnRepo)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "  Banco Itau  ", BankRef: "0123/45678-9"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("Banco Itau", account.Name) // name is trimmed
	suite.Equal("0123/45678-9", account.BankRef)
	suite.True(account.Balance.IsZero())
	suite.True(account.IsActive)
	suite.Equal(suite.userID, account.CreatedBy)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_WithOpeningBalance() {
	ctx := context.Background()
	opening := decimal.NewFromInt(250)
	req := dto.CreateAccountRequest{Name: "Caixa 2", OpeningBalance: &opening}

	var recorded domain.Transaction
	suite.mockTxnRepo.On("SaveAccountWithOpeningEntry", ctx, mock.AnythingOfType("domain.Account"), mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(2).(domain.Transaction)
		}).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.True(account.Balance.Equal(opening))

	// The opening balance is recorded as an income entry referencing the account.
	suite.Equal(domain.Income, recorded.Type)
	suite.True(recorded.Amount.Equal(opening))
	suite.Equal(domain.RefInitialBalance, recorded.ReferenceType)
	suite.Equal(account.AccountID, recorded.ReferenceID)
	suite.Equal(account.AccountID, recorded.DestinationAccountID)

	// Account row and opening entry go through the one atomic repository call.
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_OpeningEntryFailureLeavesNoAccount() {
	ctx := context.Background()
	opening := decimal.NewFromInt(250)
	req := dto.CreateAccountRequest{Name: "Caixa 2", OpeningBalance: &opening}

	suite.mockTxnRepo.On("SaveAccountWithOpeningEntry", ctx, mock.AnythingOfType("domain.Account"), mock.AnythingOfType("domain.Transaction")).
		Return(apperrors.ErrInternal).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrInternal)
	suite.Nil(account)
	// No standalone account insert happened that could survive the failure.
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NegativeOpeningBalance() {
	ctx := context.Background()
	opening := decimal.NewFromInt(-10)
	req := dto.CreateAccountRequest{Name: "Conta Errada", OpeningBalance: &opening}

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(account)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_EmptyName() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "   "}

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(account)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateName() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Banco Itau"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(account)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetOrCreateAccountByName_Existing() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: uuid.NewString(), Name: domain.VaultAccountName, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByName", ctx, domain.VaultAccountName).Return(existing, nil).Once()

	account, err := suite.service.GetOrCreateAccountByName(ctx, domain.VaultAccountName, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(existing.AccountID, account.AccountID)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetOrCreateAccountByName_CreatesWhenMissing() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByName", ctx, domain.VaultAccountName).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.GetOrCreateAccountByName(ctx, domain.VaultAccountName, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.VaultAccountName, account.Name)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetOrCreateAccountByName_LostCreationRace() {
	ctx := context.Background()
	winner := &domain.Account{AccountID: uuid.NewString(), Name: domain.VaultAccountName, IsActive: true}

	// First lookup misses, the insert loses to a concurrent creator, the
	// second lookup returns the winner's row.
	suite.mockAccountRepo.On("FindAccountByName", ctx, domain.VaultAccountName).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()
	suite.mockAccountRepo.On("FindAccountByName", ctx, domain.VaultAccountName).Return(winner, nil).Once()

	account, err := suite.service.GetOrCreateAccountByName(ctx, domain.VaultAccountName, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(winner.AccountID, account.AccountID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, Name: "Banco Velho", IsActive: true}
	newName := "Banco Novo"

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{Name: &newName}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, account.Name)
	suite.Equal(suite.userID, account.LastUpdatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ProtectedRename() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, Name: domain.OperatingCashAccountName, IsActive: true}
	newName := "Gaveta"

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	account, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{Name: &newName}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrProtectedAccount)
	suite.Nil(account)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ProtectedBankRefAllowed() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, Name: domain.VaultAccountName, IsActive: true}
	bankRef := "ref-1"

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{BankRef: &bankRef}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.VaultAccountName, account.Name)
	suite.Equal(bankRef, account.BankRef)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, Name: "Banco Antigo", IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, accountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Protected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, Name: domain.OperatingCashAccountName, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrProtectedAccount)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NonZeroBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, Name: "Banco Cheio", Balance: decimal.NewFromInt(10), IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, accountID, suite.userID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrAccountHasBalance).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrAccountHasBalance)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_DefaultsLimit() {
	ctx := context.Background()
	accounts := []domain.Account{{AccountID: uuid.NewString(), Name: "Banco", IsActive: true}}

	suite.mockAccountRepo.On("ListAccounts", ctx, 20, 0).Return(accounts, nil).Once()

	got, err := suite.service.ListAccounts(ctx, 0, -5)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
