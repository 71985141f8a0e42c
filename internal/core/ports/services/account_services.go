package services

import (
	"context"

	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/SscSPs/retail_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves a specific account by its unique identifier.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByNumber retrieves an account by its account number.
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccountsByOwner retrieves all accounts of a customer.
	ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error)
}

// AccountLifecycleSvc defines the operations that change an account's existence or status
type AccountLifecycleSvc interface {
	// CreateAccount opens an ACTIVE account, funding it through the deposit path
	// when an initial deposit is requested.
	CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// CloseAccount soft-deletes an account whose balances sum to exactly zero.
	CloseAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// RestoreAccount reactivates a CLOSED account.
	RestoreAccount(ctx context.Context, accountID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountLifecycleSvc
}
