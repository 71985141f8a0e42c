package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/retail_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/retail_ledger/internal/core/ports/services"
	"github.com/SscSPs/retail_ledger/internal/dto"
	"github.com/SscSPs/retail_ledger/internal/platform/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferService moves money. Every movement is recorded as a PENDING
// transaction first, then the balance legs are applied, then the transaction
// is marked COMPLETED. Nothing is rolled back when a later step fails.
type TransferService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountReader
	balanceSvc  portssvc.BalanceSvcFacade
	refs        *ReferenceGenerator
}

// TransferServiceOption configures a TransferService
type TransferServiceOption func(*TransferService)

// WithTransferClock overrides the clock used for CreatedAt and PostedAt
func WithTransferClock(now func() time.Time) TransferServiceOption {
	return func(s *TransferService) {
		s.Clock = now
	}
}

// WithTransferEvents publishes transaction.completed and transaction.failed events
func WithTransferEvents(publisher events.Publisher) TransferServiceOption {
	return func(s *TransferService) {
		s.Events = publisher
	}
}

// WithTransferReferences replaces the reference number generator
func WithTransferReferences(refs *ReferenceGenerator) TransferServiceOption {
	return func(s *TransferService) {
		s.refs = refs
	}
}

// NewTransferService creates a new transfer service
func NewTransferService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	balanceSvc portssvc.BalanceSvcFacade,
	options ...TransferServiceOption,
) *TransferService {
	svc := &TransferService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		balanceSvc:  balanceSvc,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.refs == nil {
		svc.refs = NewReferenceGenerator(svc.Now, nil)
	}
	return svc
}

var _ portssvc.TransferSvcFacade = (*TransferService)(nil)

// leg is one balance mutation of a transaction.
type leg struct {
	accountID string
	delta     decimal.Decimal
}

func (s *TransferService) Transfer(ctx context.Context, req dto.TransferRequest) (*domain.Transaction, error) {
	from, to, err := s.validateTransfer(ctx, req)
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		DebitAccountID: &from.AccountID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Type:           domain.Transfer,
		Description:    req.Description,
	}
	legs := []leg{{accountID: from.AccountID, delta: req.Amount.Neg()}}
	if to != nil {
		txn.CreditAccountID = &to.AccountID
		legs = append(legs, leg{accountID: to.AccountID, delta: req.Amount})
	} else {
		txn.ExternalAccountNumber = req.ExternalAccountNumber
		txn.RecipientName = req.RecipientName
	}

	if err := s.record(ctx, &txn); err != nil {
		return nil, err
	}
	return s.execute(ctx, &txn, legs)
}

func (s *TransferService) Deposit(ctx context.Context, accountID string, req dto.MovementRequest) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if _, err := s.activeAccount(ctx, accountID); err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		CreditAccountID: &accountID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Type:            domain.Deposit,
		Description:     req.Description,
	}
	if err := s.record(ctx, &txn); err != nil {
		return nil, err
	}
	return s.execute(ctx, &txn, []leg{{accountID: accountID, delta: req.Amount}})
}

func (s *TransferService) Withdraw(ctx context.Context, accountID string, req dto.MovementRequest) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	account, err := s.activeAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.checkFunds(ctx, account, req.Amount, req.Currency); err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		DebitAccountID: &accountID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Type:           domain.Withdrawal,
		Description:    req.Description,
	}
	if err := s.record(ctx, &txn); err != nil {
		return nil, err
	}
	return s.execute(ctx, &txn, []leg{{accountID: accountID, delta: req.Amount.Neg()}})
}

func (s *TransferService) ListIncompleteTransfers(ctx context.Context, olderThan time.Duration) ([]domain.Transaction, error) {
	if olderThan < 0 {
		return nil, fmt.Errorf("%w: olderThan must not be negative", apperrors.ErrValidation)
	}
	pending, err := s.txnRepo.ListTransactionsByStatus(ctx, domain.StatusPending)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending transactions")
		return nil, fmt.Errorf("failed to list pending transactions: %w", err)
	}

	cutoff := s.Now().Add(-olderThan)
	stale := make([]domain.Transaction, 0, len(pending))
	for _, t := range pending {
		if t.CreatedAt.Before(cutoff) {
			stale = append(stale, t)
		}
	}
	return domain.NewHistory(stale).Slice(), nil
}

// validateTransfer checks every precondition without touching the store's state.
// It returns the destination account for internal transfers and nil for external ones.
func (s *TransferService) validateTransfer(ctx context.Context, req dto.TransferRequest) (*domain.Account, *domain.Account, error) {
	if !req.Amount.IsPositive() {
		return nil, nil, ErrNonPositiveAmount
	}
	switch req.Mode {
	case domain.TransferInternal:
		if req.ToAccountID == "" {
			return nil, nil, fmt.Errorf("%w: internal transfers need a destination account", apperrors.ErrValidation)
		}
		if req.FromAccountID == req.ToAccountID {
			return nil, nil, ErrSameAccount
		}
	case domain.TransferExternal:
		if req.ExternalAccountNumber == "" || req.RecipientName == "" {
			return nil, nil, ErrMissingRecipientInfo
		}
	default:
		return nil, nil, fmt.Errorf("%w: unknown transfer mode %q", apperrors.ErrValidation, req.Mode)
	}

	from, err := s.activeAccount(ctx, req.FromAccountID)
	if err != nil {
		return nil, nil, err
	}

	var to *domain.Account
	if req.Mode == domain.TransferInternal {
		to, err = s.activeAccount(ctx, req.ToAccountID)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := s.checkFunds(ctx, from, req.Amount, req.Currency); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func (s *TransferService) activeAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load account", slog.String("account_id", accountID))
		}
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	if !account.IsActive() {
		return nil, fmt.Errorf("%w: account %s is %s", ErrAccountInactive, accountID, account.Status)
	}
	return account, nil
}

// checkFunds requires an existing source balance; only CREDIT accounts may go below zero.
func (s *TransferService) checkFunds(ctx context.Context, account *domain.Account, amount decimal.Decimal, currency string) error {
	balance, found, err := s.balanceSvc.GetBalance(ctx, account.AccountID, currency)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: account %s holds no %s balance", apperrors.ErrInsufficientFunds, account.AccountID, currency)
	}
	if !account.AccountType.AllowsNegativeBalance() && balance.Amount.LessThan(amount) {
		return fmt.Errorf("%w: account %s holds %s %s, needs %s",
			apperrors.ErrInsufficientFunds, account.AccountID, balance.Amount, currency, amount)
	}
	return nil
}

// record saves txn as a PENDING intent, drawing a new reference number when
// the generated one is already taken.
func (s *TransferService) record(ctx context.Context, txn *domain.Transaction) error {
	txn.TransactionID = uuid.NewString()
	txn.Status = domain.StatusPending
	txn.CreatedAt = s.Now()

	var err error
	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		txn.ReferenceNumber = s.refs.TransactionReference()
		err = s.txnRepo.SaveTransaction(ctx, *txn)
		if err == nil {
			s.LogInfo(ctx, "Transaction recorded",
				slog.String("transaction_id", txn.TransactionID),
				slog.String("reference", txn.ReferenceNumber),
				slog.String("type", string(txn.Type)),
				slog.String("amount", txn.Amount.String()),
				slog.String("currency", txn.Currency))
			return nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			break
		}
		s.LogDebug(ctx, "Reference number taken, retrying",
			slog.String("reference", txn.ReferenceNumber),
			slog.Int("attempt", attempt))
	}
	s.LogError(ctx, err, "Failed to record transaction", slog.String("type", string(txn.Type)))
	return err
}

// execute applies the legs of a recorded transaction in order and completes it.
func (s *TransferService) execute(ctx context.Context, txn *domain.Transaction, legs []leg) (*domain.Transaction, error) {
	pf := &apperrors.PartialFailureError{
		TransactionID:   txn.TransactionID,
		ReferenceNumber: txn.ReferenceNumber,
		Stage:           string(domain.StageTransactionRecorded),
	}

	for _, l := range legs {
		if _, err := s.balanceSvc.ApplyDelta(ctx, l.accountID, txn.Currency, l.delta); err != nil {
			pf.Err = err
			return nil, s.fail(ctx, txn, pf)
		}
		if l.delta.IsNegative() {
			pf.DebitApplied = true
			pf.Stage = string(domain.StageDebitApplied)
		} else {
			pf.CreditApplied = true
		}
	}
	pf.Stage = string(domain.StageBalancesApplied)

	postedAt := s.Now()
	if err := s.txnRepo.UpdateTransactionStatus(ctx, txn.TransactionID, domain.StatusCompleted, &postedAt); err != nil {
		// Balances already moved, so the intent stays PENDING for reconciliation.
		pf.Err = err
		s.LogError(ctx, err, "Failed to complete transaction after applying balances",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("reference", txn.ReferenceNumber))
		return nil, pf
	}

	txn.Status = domain.StatusCompleted
	txn.PostedAt = &postedAt
	s.LogInfo(ctx, "Transaction completed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("reference", txn.ReferenceNumber))
	s.PublishEvent(ctx, events.TransactionCompleted, *txn)
	return txn, nil
}

// fail marks txn FAILED on a best-effort basis and returns pf.
func (s *TransferService) fail(ctx context.Context, txn *domain.Transaction, pf *apperrors.PartialFailureError) error {
	s.LogError(ctx, pf.Err, "Transaction stopped before completion",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("reference", txn.ReferenceNumber),
		slog.String("stage", pf.Stage),
		slog.Bool("debit_applied", pf.DebitApplied))

	if err := s.txnRepo.UpdateTransactionStatus(ctx, txn.TransactionID, domain.StatusFailed, nil); err != nil {
		s.LogError(ctx, err, "Failed to mark transaction FAILED",
			slog.String("transaction_id", txn.TransactionID))
	} else {
		pf.MarkedFailed = true
		txn.Status = domain.StatusFailed
	}
	s.PublishEvent(ctx, events.TransactionFailed, *pf)
	return pf
}
