package services

import (
	"context"

	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/SscSPs/retail_ledger/internal/dto"
)

// LedgerSession is one customer's working view of the ledger. Mutations go through
// the session so that it can check ownership and re-fetch its snapshot afterwards.
type LedgerSession interface {
	// Snapshot returns the state loaded by the last Open or Refresh.
	Snapshot() *domain.LedgerSnapshot

	// Refresh re-fetches accounts, balances and history from the ledger store.
	Refresh(ctx context.Context) error

	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	CloseAccount(ctx context.Context, accountID string) (*domain.Account, error)
	RestoreAccount(ctx context.Context, accountID string) (*domain.Account, error)
	Deposit(ctx context.Context, accountID string, req dto.MovementRequest) (*domain.Transaction, error)
	Withdraw(ctx context.Context, accountID string, req dto.MovementRequest) (*domain.Transaction, error)
	Transfer(ctx context.Context, req dto.TransferRequest) (*domain.Transaction, error)
}

// SessionSvc opens ledger sessions
type SessionSvc interface {
	// Open loads the owner's snapshot.
	Open(ctx context.Context, ownerID string) (LedgerSession, error)
}

// AccountLocker serialises mutations that touch the same accounts across processes.
type AccountLocker interface {
	// WithAccountLock runs fn while holding a lock on every account in accountIDs.
	WithAccountLock(ctx context.Context, accountIDs []string, fn func(ctx context.Context) error) error
}
