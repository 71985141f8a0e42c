package dto

import (
	"time"

	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyRequest is an amount in a single currency.
type MoneyRequest struct {
	Amount   decimal.Decimal `json:"amount" swaggertype:"string" example:"100.00"`
	Currency string          `json:"currency" binding:"required,iso4217" example:"USD"`
}

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=CHECKING SAVINGS CREDIT"`
	InitialDeposit *MoneyRequest      `json:"initialDeposit"` // Optional
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string               `json:"accountID"`
	AccountNumber string               `json:"accountNumber"`
	AccountType   domain.AccountType   `json:"accountType"`
	OwnerID       string               `json:"ownerID"`
	Status        domain.AccountStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		AccountNumber: acc.AccountNumber,
		AccountType:   acc.AccountType,
		OwnerID:       acc.OwnerID,
		Status:        acc.Status,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing the caller's accounts.
type ListAccountsParams struct {
	Status domain.AccountStatus `form:"status" binding:"omitempty,oneof=ACTIVE CLOSED"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
