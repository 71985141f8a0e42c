package services

import (
	"context"

	"github.com/SscSPs/retail_ledger/internal/core/domain"
)

// HistorySvc is the read-only transaction ledger view
type HistorySvc interface {
	// HistoryFor collects the transactions touching any of accountIDs, deduplicated
	// and ordered newest first. A failed fetch for one side of one account is logged
	// and skipped.
	HistoryFor(ctx context.Context, accountIDs []string) (domain.History, error)

	// GetByReference retrieves a transaction by reference number.
	GetByReference(ctx context.Context, referenceNumber string) (*domain.Transaction, error)
}
