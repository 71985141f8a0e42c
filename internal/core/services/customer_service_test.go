package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/SscSPs/retail_ledger/internal/core/services"
	"github.com/SscSPs/retail_ledger/internal/dto"
	"github.com/SscSPs/retail_ledger/internal/repositories/memory"
	"github.com/SscSPs/retail_ledger/internal/utils"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	service *services.CustomerService
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.service = services.NewCustomerService(memory.NewStore())
}

func (suite *CustomerServiceTestSuite) register(email string) dto.RegisterCustomerRequest {
	return dto.RegisterCustomerRequest{
		FullName:    " Ada Lovelace ",
		Email:       email,
		Password:    "correct-horse",
		DateOfBirth: "1990-04-21",
	}
}

func (suite *CustomerServiceTestSuite) TestRegister_NormalisesAndHashes() {
	customer, err := suite.service.Register(suite.ctx, suite.register("Ada@Example.COM"))

	suite.Require().NoError(err)
	suite.Equal("Ada Lovelace", customer.FullName)
	suite.Equal("ada@example.com", customer.Email)
	suite.Equal(time.Date(1990, 4, 21, 0, 0, 0, 0, time.UTC), customer.DateOfBirth)
	suite.NotEqual("correct-horse", customer.PasswordHash)
	suite.True(utils.CheckPasswordHash("correct-horse", customer.PasswordHash))
}

func (suite *CustomerServiceTestSuite) TestRegister_DuplicateEmail() {
	_, err := suite.service.Register(suite.ctx, suite.register("ada@example.com"))
	suite.Require().NoError(err)

	_, err = suite.service.Register(suite.ctx, suite.register("ADA@example.com"))

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CustomerServiceTestSuite) TestRegister_BadDateOfBirth() {
	req := suite.register("ada@example.com")
	req.DateOfBirth = "21/04/1990"

	_, err := suite.service.Register(suite.ctx, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CustomerServiceTestSuite) TestAuthenticate() {
	registered, err := suite.service.Register(suite.ctx, suite.register("ada@example.com"))
	suite.Require().NoError(err)

	got, err := suite.service.Authenticate(suite.ctx, " ADA@example.com", "correct-horse")
	suite.Require().NoError(err)
	suite.Equal(registered.CustomerID, got.CustomerID)

	_, err = suite.service.Authenticate(suite.ctx, "ada@example.com", "wrong")
	suite.ErrorIs(err, services.ErrInvalidCredentials)

	_, err = suite.service.Authenticate(suite.ctx, "nobody@example.com", "correct-horse")
	suite.ErrorIs(err, services.ErrInvalidCredentials)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *CustomerServiceTestSuite) TestGetCustomer_NotFound() {
	_, err := suite.service.GetCustomer(suite.ctx, "missing")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CustomerServiceTestSuite) TestTokenRoundTrip() {
	tokens := services.NewTokenService("test-secret", time.Hour, "retail-ledger")

	token, err := tokens.GenerateToken("customer-1")
	suite.Require().NoError(err)

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	suite.Require().NoError(err)
	suite.Equal("customer-1", claims.Subject)
	suite.Equal("retail-ledger", claims.Issuer)

	_, err = utils.ParseAndValidateJWT(token, "other-secret")
	suite.Error(err)
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
