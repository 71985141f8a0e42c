package services

import (
	"context"

	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceReaderSvc defines read operations for per-currency balances
type BalanceReaderSvc interface {
	// GetBalance looks up the (account, currency) balance. found is false when no row
	// exists, which callers treat as an implicit zero.
	GetBalance(ctx context.Context, accountID string, currency string) (balance *domain.Balance, found bool, err error)

	// ListBalances retrieves every currency balance of an account.
	ListBalances(ctx context.Context, accountID string) ([]domain.Balance, error)

	// SumAcrossCurrencies adds every currency balance of an account at face value.
	// Closure uses it as the zero-balance check.
	SumAcrossCurrencies(ctx context.Context, accountID string) (decimal.Decimal, error)

	// TotalInCurrency sums one currency across accounts; missing rows count as zero.
	TotalInCurrency(ctx context.Context, accountIDs []string, currency string) (decimal.Decimal, error)
}

// BalanceWriterSvc defines balance mutations
type BalanceWriterSvc interface {
	// ApplyDelta adds delta to the (account, currency) balance, creating the row for a
	// positive delta. A negative delta against a missing row fails with
	// apperrors.ErrInsufficientFunds.
	ApplyDelta(ctx context.Context, accountID string, currency string, delta decimal.Decimal) (*domain.Balance, error)
}

// BalanceSvcFacade combines all balance-related service interfaces
type BalanceSvcFacade interface {
	BalanceReaderSvc
	BalanceWriterSvc
}
