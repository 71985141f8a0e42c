package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is the stored amount of one account in one currency.
type Balance struct {
	BalanceID string          `json:"id" db:"balance_id"`
	AccountID string          `json:"accountId" db:"account_id"`
	Currency  string          `json:"currency" db:"currency"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	AuditFields
}

// BalanceUpdate is the body of a balance amount update.
type BalanceUpdate struct {
	Amount        decimal.Decimal `json:"amount"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}
