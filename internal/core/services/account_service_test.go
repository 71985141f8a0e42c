package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/SscSPs/retail_ledger/internal/core/services"
	"github.com/SscSPs/retail_ledger/internal/dto"
	"github.com/SscSPs/retail_ledger/internal/platform/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockDepositService is a mock type for the DepositSvc interface
type MockDepositService struct {
	mock.Mock
}

func (m *MockDepositService) Deposit(ctx context.Context, accountID string, req dto.MovementRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

type AccountServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	now         time.Time
	accountRepo *MockAccountRepository
	balanceRepo *MockBalanceRepository
	deposits    *MockDepositService
	publisher   *MockPublisher
	service     *services.AccountService
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2024, 7, 4, 15, 30, 0, 0, time.UTC)
	suite.accountRepo = new(MockAccountRepository)
	suite.balanceRepo = new(MockBalanceRepository)
	suite.deposits = new(MockDepositService)
	suite.publisher = new(MockPublisher)
	clock := func() time.Time { return suite.now }
	suite.service = services.NewAccountService(
		suite.accountRepo,
		services.NewBalanceService(suite.balanceRepo),
		suite.deposits,
		services.WithAccountClock(clock),
		services.WithAccountEvents(suite.publisher),
		services.WithAccountNumbers(services.NewReferenceGenerator(clock, func(int) int { return 42 })),
	)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	suite.accountRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()
	suite.publisher.On("Publish", suite.ctx, eventOfType(events.AccountCreated)).Return(nil).Once()

	acc, err := suite.service.CreateAccount(suite.ctx, "owner-1", dto.CreateAccountRequest{AccountType: domain.Savings})

	suite.Require().NoError(err)
	suite.NotEmpty(acc.AccountID)
	suite.Regexp(`^ACC-\d{6}-042$`, acc.AccountNumber)
	suite.Equal(domain.Savings, acc.AccountType)
	suite.Equal(domain.AccountActive, acc.Status)
	suite.Equal(suite.now, acc.CreatedAt)
	suite.deposits.AssertNotCalled(suite.T(), "Deposit", mock.Anything, mock.Anything, mock.Anything)
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RetriesTakenNumber() {
	suite.accountRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Twice()
	suite.accountRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	_, err := suite.service.CreateAccount(suite.ctx, "owner-1", dto.CreateAccountRequest{AccountType: domain.Checking})

	suite.Require().NoError(err)
	suite.accountRepo.AssertNumberOfCalls(suite.T(), "SaveAccount", 3)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SaveError() {
	suite.accountRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(assert.AnError).Once()

	acc, err := suite.service.CreateAccount(suite.ctx, "owner-1", dto.CreateAccountRequest{AccountType: domain.Checking})

	suite.Nil(acc)
	suite.ErrorIs(err, assert.AnError)
	suite.accountRepo.AssertNumberOfCalls(suite.T(), "SaveAccount", 1)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InitialDepositGoesThroughDepositPath() {
	suite.accountRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	suite.deposits.On("Deposit", suite.ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(r dto.MovementRequest) bool {
		return r.Amount.Equal(decimal.NewFromInt(500)) && r.Currency == "USD"
	})).Return(&domain.Transaction{Type: domain.Deposit}, nil).Once()

	acc, err := suite.service.CreateAccount(suite.ctx, "owner-1", dto.CreateAccountRequest{
		AccountType:    domain.Checking,
		InitialDeposit: &dto.MoneyRequest{Amount: decimal.NewFromInt(500), Currency: "USD"},
	})

	suite.Require().NoError(err)
	suite.deposits.AssertCalled(suite.T(), "Deposit", suite.ctx, acc.AccountID, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_FailedDepositStillReturnsAccount() {
	suite.accountRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	depositErr := &apperrors.PartialFailureError{ReferenceNumber: "TXN-1", Stage: string(domain.StageTransactionRecorded), Err: errors.New("down")}
	suite.deposits.On("Deposit", mock.Anything, mock.Anything, mock.Anything).Return(nil, depositErr).Once()

	acc, err := suite.service.CreateAccount(suite.ctx, "owner-1", dto.CreateAccountRequest{
		AccountType:    domain.Checking,
		InitialDeposit: &dto.MoneyRequest{Amount: decimal.NewFromInt(5), Currency: "USD"},
	})

	suite.Require().NotNil(acc)
	suite.ErrorIs(err, apperrors.ErrPartialFailure)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RejectsBadInput() {
	_, err := suite.service.CreateAccount(suite.ctx, "owner-1", dto.CreateAccountRequest{AccountType: "BROKERAGE"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreateAccount(suite.ctx, "owner-1", dto.CreateAccountRequest{
		AccountType:    domain.Checking,
		InitialDeposit: &dto.MoneyRequest{Amount: decimal.NewFromInt(-5), Currency: "USD"},
	})
	suite.ErrorIs(err, services.ErrNonPositiveAmount)
	suite.accountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCloseAccount_NonZeroBalanceLeavesStatus() {
	acc := &domain.Account{AccountID: "acc-1", Status: domain.AccountActive}
	suite.accountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(acc, nil).Once()
	suite.balanceRepo.On("ListBalancesByAccount", suite.ctx, "acc-1").Return([]domain.Balance{
		{Currency: "USD", Amount: decimal.NewFromInt(60)},
	}, nil).Once()

	_, err := suite.service.CloseAccount(suite.ctx, "acc-1")

	suite.ErrorIs(err, services.ErrNonZeroBalance)
	suite.accountRepo.AssertNotCalled(suite.T(), "UpdateAccountStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCloseAccount_Success() {
	acc := &domain.Account{AccountID: "acc-1", Status: domain.AccountActive}
	closed := &domain.Account{AccountID: "acc-1", Status: domain.AccountClosed}
	suite.accountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(acc, nil).Once()
	suite.balanceRepo.On("ListBalancesByAccount", suite.ctx, "acc-1").Return([]domain.Balance{
		{Currency: "USD", Amount: decimal.Zero},
	}, nil).Once()
	suite.accountRepo.On("UpdateAccountStatus", suite.ctx, "acc-1", domain.AccountClosed, suite.now).Return(closed, nil).Once()
	suite.publisher.On("Publish", suite.ctx, eventOfType(events.AccountClosed)).Return(nil).Once()

	got, err := suite.service.CloseAccount(suite.ctx, "acc-1")

	suite.Require().NoError(err)
	suite.Equal(domain.AccountClosed, got.Status)
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestRestoreAccount_NotFound() {
	suite.accountRepo.On("FindAccountByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RestoreAccount(suite.ctx, "missing")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestRestoreAccount_AlreadyActive() {
	suite.accountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(&domain.Account{AccountID: "acc-1", Status: domain.AccountActive}, nil).Once()

	_, err := suite.service.RestoreAccount(suite.ctx, "acc-1")

	suite.ErrorIs(err, services.ErrInvalidState)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
}

func (suite *AccountServiceTestSuite) TestGetAccountByNumber_TransportError() {
	storeErr := apperrors.NewTransportError("FindAccountByNumber", errors.New("timeout"))
	suite.accountRepo.On("FindAccountByNumber", suite.ctx, "ACC-1").Return(nil, storeErr).Once()

	_, err := suite.service.GetAccountByNumber(suite.ctx, "ACC-1")

	suite.ErrorIs(err, apperrors.ErrTransport)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
