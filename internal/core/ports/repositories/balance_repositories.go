package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceReader defines read operations for balance data
type BalanceReader interface {
	// FindBalanceByID retrieves a balance row by its identifier.
	FindBalanceByID(ctx context.Context, balanceID string) (*domain.Balance, error)

	// FindBalance retrieves the balance row for an (account, currency) pair.
	// It returns apperrors.ErrNotFound when the account holds nothing in that currency.
	FindBalance(ctx context.Context, accountID string, currency string) (*domain.Balance, error)

	// ListBalancesByAccount retrieves every currency balance of an account.
	ListBalancesByAccount(ctx context.Context, accountID string) ([]domain.Balance, error)
}

// BalanceWriter defines write operations for balance data
type BalanceWriter interface {
	// SaveBalance persists a new balance row.
	SaveBalance(ctx context.Context, balance domain.Balance) error

	// UpdateBalanceAmount overwrites the amount of an existing balance row.
	UpdateBalanceAmount(ctx context.Context, balanceID string, amount decimal.Decimal, now time.Time) (*domain.Balance, error)
}

// BalanceRepositoryFacade combines all balance-related repository interfaces
type BalanceRepositoryFacade interface {
	BalanceReader
	BalanceWriter
}
