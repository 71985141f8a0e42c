package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/retail_ledger/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByReference retrieves a transaction by its unique reference number.
	FindTransactionByReference(ctx context.Context, referenceNumber string) (*domain.Transaction, error)

	// ListTransactionsByDebitAccount retrieves transactions that take money out of the account.
	ListTransactionsByDebitAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)

	// ListTransactionsByCreditAccount retrieves transactions that put money into the account.
	ListTransactionsByCreditAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)

	// ListTransactionsByStatus retrieves all transactions in the given status.
	ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction. Reference numbers are unique;
	// a clash is reported as apperrors.ErrDuplicate.
	SaveTransaction(ctx context.Context, transaction domain.Transaction) error

	// UpdateTransactionStatus progresses the status of a transaction. postedAt is stored
	// alongside COMPLETED and may be nil otherwise.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, postedAt *time.Time) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
