package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/SscSPs/retail_ledger/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HistoryServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockRepo *MockTransactionRepository
	service  *services.HistoryService
}

func (suite *HistoryServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = new(MockTransactionRepository)
	suite.service = services.NewHistoryService(suite.mockRepo, services.WithHistoryFetchLimit(2))
}

func txnAt(id string, debit, credit string, at time.Time) domain.Transaction {
	t := domain.Transaction{TransactionID: id, CreatedAt: at, Status: domain.StatusCompleted}
	if debit != "" {
		t.DebitAccountID = &debit
	}
	if credit != "" {
		t.CreditAccountID = &credit
	}
	return t
}

func (suite *HistoryServiceTestSuite) TestHistoryFor_SkipsFailedSide() {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	suite.mockRepo.On("ListTransactionsByDebitAccount", mock.Anything, "a").Return(nil, assert.AnError).Once()
	suite.mockRepo.On("ListTransactionsByCreditAccount", mock.Anything, "a").Return([]domain.Transaction{
		txnAt("t1", "b", "a", base),
	}, nil).Once()
	suite.mockRepo.On("ListTransactionsByDebitAccount", mock.Anything, "b").Return([]domain.Transaction{
		txnAt("t1", "b", "a", base),
		txnAt("t2", "b", "", base.Add(time.Hour)),
	}, nil).Once()
	suite.mockRepo.On("ListTransactionsByCreditAccount", mock.Anything, "b").Return([]domain.Transaction{}, nil).Once()

	history, err := suite.service.HistoryFor(suite.ctx, []string{"a", "b"})

	suite.Require().NoError(err)
	got := history.Slice()
	suite.Require().Len(got, 2)
	suite.Equal("t2", got[0].TransactionID)
	suite.Equal("t1", got[1].TransactionID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HistoryServiceTestSuite) TestHistoryFor_AllSidesFailingIsEmptyNotError() {
	suite.mockRepo.On("ListTransactionsByDebitAccount", mock.Anything, "a").Return(nil, apperrors.NewTransportError("list", assert.AnError)).Once()
	suite.mockRepo.On("ListTransactionsByCreditAccount", mock.Anything, "a").Return(nil, apperrors.NewTransportError("list", assert.AnError)).Once()

	history, err := suite.service.HistoryFor(suite.ctx, []string{"a"})

	suite.Require().NoError(err)
	suite.Zero(history.Len())
}

func (suite *HistoryServiceTestSuite) TestHistoryFor_CancelledContext() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()
	suite.mockRepo.On("ListTransactionsByDebitAccount", mock.Anything, mock.Anything).Return(nil, context.Canceled).Maybe()
	suite.mockRepo.On("ListTransactionsByCreditAccount", mock.Anything, mock.Anything).Return(nil, context.Canceled).Maybe()

	_, err := suite.service.HistoryFor(ctx, []string{"a", "b"})

	suite.ErrorIs(err, context.Canceled)
}

func (suite *HistoryServiceTestSuite) TestHistoryFor_NoAccounts() {
	history, err := suite.service.HistoryFor(suite.ctx, nil)

	suite.Require().NoError(err)
	suite.Zero(history.Len())
	suite.mockRepo.AssertNotCalled(suite.T(), "ListTransactionsByDebitAccount", mock.Anything, mock.Anything)
}

func (suite *HistoryServiceTestSuite) TestGetByReference() {
	txn := txnAt("t1", "a", "", time.Now())
	suite.mockRepo.On("FindTransactionByReference", suite.ctx, "TXN-1").Return(&txn, nil).Once()
	suite.mockRepo.On("FindTransactionByReference", suite.ctx, "TXN-2").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetByReference(suite.ctx, "TXN-1")
	suite.Require().NoError(err)
	suite.Equal("t1", got.TransactionID)

	_, err = suite.service.GetByReference(suite.ctx, "TXN-2")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestHistoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryServiceTestSuite))
}
