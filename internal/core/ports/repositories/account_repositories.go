package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/retail_ledger/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its human-readable account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccountsByOwner retrieves all accounts, active and closed, owned by a customer.
	ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountStatus moves an account between ACTIVE and CLOSED and returns the stored account.
	UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, now time.Time) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
