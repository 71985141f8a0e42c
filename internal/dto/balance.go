package dto

import (
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceResponse is one currency balance of an account.
type BalanceResponse struct {
	BalanceID string          `json:"balanceID"`
	AccountID string          `json:"accountID"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
}

// ToBalanceResponse converts a domain.Balance to BalanceResponse DTO
func ToBalanceResponse(b domain.Balance) BalanceResponse {
	return BalanceResponse{
		BalanceID: b.BalanceID,
		AccountID: b.AccountID,
		Currency:  b.Currency,
		Amount:    b.Amount,
	}
}

// ToListBalanceResponse converts balances to DTOs.
func ToListBalanceResponse(balances []domain.Balance) []BalanceResponse {
	res := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		res[i] = ToBalanceResponse(b)
	}
	return res
}

// ListBalancesResponse wraps an account's balances.
type ListBalancesResponse struct {
	AccountID string            `json:"accountID"`
	Balances  []BalanceResponse `json:"balances"`
}
