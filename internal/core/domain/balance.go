package domain

import "github.com/shopspring/decimal"

// Balance is the amount an account holds in one currency.
// There is at most one Balance per (AccountID, Currency).
type Balance struct {
	BalanceID string          `json:"balanceID" validate:"required"`
	AccountID string          `json:"accountID" validate:"required"`
	Currency  string          `json:"currency" validate:"required,iso4217"`
	Amount    decimal.Decimal `json:"amount"`
	AuditFields
}

// SumBalances adds up the amounts of the given balances regardless of currency.
// It is only meaningful as a zero check; amounts are never converted.
func SumBalances(balances []Balance) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.Amount)
	}
	return sum
}
