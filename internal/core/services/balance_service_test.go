package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/SscSPs/retail_ledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	now      time.Time
	mockRepo *MockBalanceRepository
	service  *services.BalanceService
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC)
	suite.mockRepo = new(MockBalanceRepository)
	suite.service = services.NewBalanceService(suite.mockRepo, services.WithBalanceClock(func() time.Time { return suite.now }))
}

func (suite *BalanceServiceTestSuite) TestGetBalance_AbsentIsNotAnError() {
	suite.mockRepo.On("FindBalance", suite.ctx, "acc-1", "EUR").Return(nil, apperrors.ErrNotFound).Once()

	balance, found, err := suite.service.GetBalance(suite.ctx, "acc-1", "EUR")

	suite.Require().NoError(err)
	suite.False(found)
	suite.Nil(balance)
}

func (suite *BalanceServiceTestSuite) TestGetBalance_StoreErrorPropagates() {
	suite.mockRepo.On("FindBalance", suite.ctx, "acc-1", "EUR").Return(nil, assert.AnError).Once()

	_, found, err := suite.service.GetBalance(suite.ctx, "acc-1", "EUR")

	suite.False(found)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *BalanceServiceTestSuite) TestApplyDelta_UpdatesExistingRow() {
	existing := &domain.Balance{BalanceID: "bal-1", AccountID: "acc-1", Currency: "USD", Amount: decimal.NewFromInt(100)}
	suite.mockRepo.On("FindBalance", suite.ctx, "acc-1", "USD").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateBalanceAmount", suite.ctx, "bal-1", amountOf(75), suite.now).
		Return(&domain.Balance{BalanceID: "bal-1", Amount: decimal.NewFromInt(75)}, nil).Once()

	updated, err := suite.service.ApplyDelta(suite.ctx, "acc-1", "USD", decimal.NewFromInt(-25))

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(decimal.NewFromInt(75)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestApplyDelta_CreatesRowForPositiveDelta() {
	suite.mockRepo.On("FindBalance", suite.ctx, "acc-1", "GBP").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveBalance", suite.ctx, mock.MatchedBy(func(b domain.Balance) bool {
		return b.AccountID == "acc-1" && b.Currency == "GBP" && b.Amount.Equal(decimal.NewFromInt(30)) && b.CreatedAt.Equal(suite.now)
	})).Return(nil).Once()

	created, err := suite.service.ApplyDelta(suite.ctx, "acc-1", "GBP", decimal.NewFromInt(30))

	suite.Require().NoError(err)
	suite.NotEmpty(created.BalanceID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestApplyDelta_NegativeDeltaOnMissingRow() {
	suite.mockRepo.On("FindBalance", suite.ctx, "acc-1", "GBP").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ApplyDelta(suite.ctx, "acc-1", "GBP", decimal.NewFromInt(-1))

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBalance", mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestApplyDelta_ZeroDeltaRejected() {
	_, err := suite.service.ApplyDelta(suite.ctx, "acc-1", "USD", decimal.Zero)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindBalance", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestTotalInCurrency_MissingRowsCountAsZero() {
	suite.mockRepo.On("FindBalance", suite.ctx, "a", "USD").Return(&domain.Balance{Amount: decimal.RequireFromString("10.50")}, nil).Once()
	suite.mockRepo.On("FindBalance", suite.ctx, "b", "USD").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindBalance", suite.ctx, "c", "USD").Return(&domain.Balance{Amount: decimal.RequireFromString("-0.50")}, nil).Once()

	total, err := suite.service.TotalInCurrency(suite.ctx, []string{"a", "b", "c"}, "USD")

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.NewFromInt(10)), total.String())
}

func (suite *BalanceServiceTestSuite) TestSumAcrossCurrencies() {
	suite.mockRepo.On("ListBalancesByAccount", suite.ctx, "a").Return([]domain.Balance{
		{Currency: "USD", Amount: decimal.NewFromInt(3)},
		{Currency: "EUR", Amount: decimal.NewFromInt(4)},
	}, nil).Once()

	sum, err := suite.service.SumAcrossCurrencies(suite.ctx, "a")

	suite.Require().NoError(err)
	suite.True(sum.Equal(decimal.NewFromInt(7)))
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
