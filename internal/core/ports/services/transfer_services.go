package services

import (
	"context"
	"time"

	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/SscSPs/retail_ledger/internal/dto"
)

// DepositSvc is the single-leg credit path. Account creation funds new accounts through it.
type DepositSvc interface {
	// Deposit credits an account and records a DEPOSIT transaction.
	Deposit(ctx context.Context, accountID string, req dto.MovementRequest) (*domain.Transaction, error)
}

// TransferWriterSvc defines the money-moving operations
type TransferWriterSvc interface {
	DepositSvc

	// Withdraw debits an account and records a WITHDRAWAL transaction.
	Withdraw(ctx context.Context, accountID string, req dto.MovementRequest) (*domain.Transaction, error)

	// Transfer runs an internal or external transfer through
	// validate, record, apply and complete.
	Transfer(ctx context.Context, req dto.TransferRequest) (*domain.Transaction, error)
}

// TransferAuditSvc exposes write-ahead intents that never completed
type TransferAuditSvc interface {
	// ListIncompleteTransfers retrieves PENDING transactions created more than olderThan ago.
	ListIncompleteTransfers(ctx context.Context, olderThan time.Duration) ([]domain.Transaction, error)
}

// TransferSvcFacade combines all transfer-related service interfaces
type TransferSvcFacade interface {
	TransferWriterSvc
	TransferAuditSvc
}
