package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/retail_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/retail_ledger/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

// defaultHistoryFetchLimit caps concurrent store calls per HistoryFor.
const defaultHistoryFetchLimit = 8

// HistoryService builds transaction history views from the store.
type HistoryService struct {
	BaseService
	txnRepo    portsrepo.TransactionReader
	fetchLimit int
}

// HistoryServiceOption configures a HistoryService
type HistoryServiceOption func(*HistoryService)

// WithHistoryFetchLimit sets how many list calls may be in flight at once
func WithHistoryFetchLimit(n int) HistoryServiceOption {
	return func(s *HistoryService) {
		if n > 0 {
			s.fetchLimit = n
		}
	}
}

// NewHistoryService creates a new history service
func NewHistoryService(txnRepo portsrepo.TransactionReader, options ...HistoryServiceOption) *HistoryService {
	svc := &HistoryService{txnRepo: txnRepo, fetchLimit: defaultHistoryFetchLimit}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.HistorySvc = (*HistoryService)(nil)

// HistoryFor fetches the debit and credit sides of every account concurrently.
// A side that fails is logged and left out, so the result may be partial. Only
// cancellation of ctx is reported as an error.
func (s *HistoryService) HistoryFor(ctx context.Context, accountIDs []string) (domain.History, error) {
	lists := make([][]domain.Transaction, 2*len(accountIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fetchLimit)
	for i, accountID := range accountIDs {
		g.Go(func() error {
			lists[2*i] = s.fetchSide(gctx, "debit", accountID, s.txnRepo.ListTransactionsByDebitAccount)
			return nil
		})
		g.Go(func() error {
			lists[2*i+1] = s.fetchSide(gctx, "credit", accountID, s.txnRepo.ListTransactionsByCreditAccount)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return domain.History{}, fmt.Errorf("history fetch interrupted: %w", err)
	}
	return domain.NewHistory(lists...), nil
}

func (s *HistoryService) fetchSide(
	ctx context.Context,
	side string,
	accountID string,
	list func(context.Context, string) ([]domain.Transaction, error),
) []domain.Transaction {
	txns, err := list(ctx, accountID)
	if err != nil {
		s.LogWarn(ctx, err, "Skipping transaction list in history",
			slog.String("account_id", accountID),
			slog.String("side", side))
		return nil
	}
	return txns
}

func (s *HistoryService) GetByReference(ctx context.Context, referenceNumber string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByReference(ctx, referenceNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get transaction by reference", slog.String("reference", referenceNumber))
		}
		return nil, fmt.Errorf("failed to get transaction %s: %w", referenceNumber, err)
	}
	return txn, nil
}
