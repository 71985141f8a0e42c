package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/retail_ledger/internal/core/ports/services"
	"github.com/SscSPs/retail_ledger/internal/dto"
	"golang.org/x/sync/errgroup"
)

// SessionService opens per-customer ledger sessions. It holds no state of its
// own; every session loads its snapshot from the store.
type SessionService struct {
	BaseService
	accounts  portssvc.AccountSvcFacade
	balances  portssvc.BalanceReaderSvc
	transfers portssvc.TransferWriterSvc
	history   portssvc.HistorySvc
	locker    portssvc.AccountLocker
}

// SessionServiceOption configures a SessionService
type SessionServiceOption func(*SessionService)

// WithAccountLocker wraps every session mutation in a lock over the accounts it touches
func WithAccountLocker(locker portssvc.AccountLocker) SessionServiceOption {
	return func(s *SessionService) {
		s.locker = locker
	}
}

// NewSessionService creates a new session service
func NewSessionService(
	accounts portssvc.AccountSvcFacade,
	balances portssvc.BalanceReaderSvc,
	transfers portssvc.TransferWriterSvc,
	history portssvc.HistorySvc,
	options ...SessionServiceOption,
) *SessionService {
	svc := &SessionService{
		accounts:  accounts,
		balances:  balances,
		transfers: transfers,
		history:   history,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SessionSvc = (*SessionService)(nil)

func (s *SessionService) Open(ctx context.Context, ownerID string) (portssvc.LedgerSession, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", apperrors.ErrValidation)
	}
	snap, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &ledgerSession{svc: s, ownerID: ownerID, snap: snap}, nil
}

// load fetches the owner's accounts, then their balances and history in parallel.
func (s *SessionService) load(ctx context.Context, ownerID string) (*domain.LedgerSnapshot, error) {
	accounts, err := s.accounts.ListAccountsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ids := domain.AccountIDs(accounts)
	balances := make([][]domain.Balance, len(ids))
	var history domain.History

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			b, err := s.balances.ListBalances(gctx, id)
			if err != nil {
				return err
			}
			balances[i] = b
			return nil
		})
	}
	g.Go(func() error {
		h, err := s.history.HistoryFor(gctx, ids)
		if err != nil {
			return err
		}
		history = h
		return nil
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load ledger snapshot", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to load ledger for %s: %w", ownerID, err)
	}

	byAccount := make(map[string][]domain.Balance, len(ids))
	for i, id := range ids {
		byAccount[id] = balances[i]
	}
	return &domain.LedgerSnapshot{
		OwnerID:  ownerID,
		Accounts: accounts,
		Balances: byAccount,
		History:  history,
		LoadedAt: s.Now(),
	}, nil
}

func (s *SessionService) withLock(ctx context.Context, accountIDs []string, fn func(ctx context.Context) error) error {
	if s.locker == nil {
		return fn(ctx)
	}
	return s.locker.WithAccountLock(ctx, accountIDs, fn)
}

type ledgerSession struct {
	svc     *SessionService
	ownerID string

	mu   sync.RWMutex
	snap *domain.LedgerSnapshot
}

func (ls *ledgerSession) Snapshot() *domain.LedgerSnapshot {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return ls.snap
}

func (ls *ledgerSession) Refresh(ctx context.Context) error {
	snap, err := ls.svc.load(ctx, ls.ownerID)
	if err != nil {
		return err
	}
	ls.mu.Lock()
	ls.snap = snap
	ls.mu.Unlock()
	return nil
}

// refreshAfterMutation re-fetches the snapshot. The mutation has already been
// applied, so a failure here is logged and the stale snapshot kept.
func (ls *ledgerSession) refreshAfterMutation(ctx context.Context) {
	if err := ls.Refresh(ctx); err != nil {
		ls.svc.LogWarn(ctx, err, "Failed to refresh ledger snapshot after mutation",
			slog.String("owner_id", ls.ownerID))
	}
}

func (ls *ledgerSession) requireOwned(accountID string) error {
	if !ls.Snapshot().Owns(accountID) {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

func (ls *ledgerSession) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	account, err := ls.svc.accounts.CreateAccount(ctx, ls.ownerID, req)
	if account != nil {
		ls.refreshAfterMutation(ctx)
	}
	return account, err
}

func (ls *ledgerSession) CloseAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return ls.mutateAccount(ctx, accountID, ls.svc.accounts.CloseAccount)
}

func (ls *ledgerSession) RestoreAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return ls.mutateAccount(ctx, accountID, ls.svc.accounts.RestoreAccount)
}

func (ls *ledgerSession) mutateAccount(
	ctx context.Context,
	accountID string,
	op func(context.Context, string) (*domain.Account, error),
) (*domain.Account, error) {
	if err := ls.requireOwned(accountID); err != nil {
		return nil, err
	}
	var account *domain.Account
	err := ls.svc.withLock(ctx, []string{accountID}, func(ctx context.Context) error {
		var err error
		account, err = op(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	ls.refreshAfterMutation(ctx)
	return account, nil
}

func (ls *ledgerSession) Deposit(ctx context.Context, accountID string, req dto.MovementRequest) (*domain.Transaction, error) {
	return ls.move(ctx, []string{accountID}, func(ctx context.Context) (*domain.Transaction, error) {
		return ls.svc.transfers.Deposit(ctx, accountID, req)
	})
}

func (ls *ledgerSession) Withdraw(ctx context.Context, accountID string, req dto.MovementRequest) (*domain.Transaction, error) {
	return ls.move(ctx, []string{accountID}, func(ctx context.Context) (*domain.Transaction, error) {
		return ls.svc.transfers.Withdraw(ctx, accountID, req)
	})
}

// Transfer moves money out of one of the owner's accounts. The destination of
// an internal transfer may belong to anyone and can be given by account number.
func (ls *ledgerSession) Transfer(ctx context.Context, req dto.TransferRequest) (*domain.Transaction, error) {
	if req.Mode == domain.TransferInternal && req.ToAccountID == "" && req.ToAccountNumber != "" {
		to, err := ls.svc.accounts.GetAccountByNumber(ctx, req.ToAccountNumber)
		if err != nil {
			return nil, err
		}
		req.ToAccountID = to.AccountID
	}

	touched := []string{req.FromAccountID}
	if req.Mode == domain.TransferInternal && req.ToAccountID != "" && req.ToAccountID != req.FromAccountID {
		touched = append(touched, req.ToAccountID)
	}
	return ls.move(ctx, touched, func(ctx context.Context) (*domain.Transaction, error) {
		return ls.svc.transfers.Transfer(ctx, req)
	})
}

// move runs a money movement whose first account must be owned by the session.
func (ls *ledgerSession) move(
	ctx context.Context,
	accountIDs []string,
	op func(context.Context) (*domain.Transaction, error),
) (*domain.Transaction, error) {
	if err := ls.requireOwned(accountIDs[0]); err != nil {
		return nil, err
	}
	var txn *domain.Transaction
	err := ls.svc.withLock(ctx, accountIDs, func(ctx context.Context) error {
		var err error
		txn, err = op(ctx)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrPartialFailure) {
			ls.refreshAfterMutation(ctx)
		}
		return nil, err
	}
	ls.refreshAfterMutation(ctx)
	return txn, nil
}
