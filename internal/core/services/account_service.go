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
)

// AccountService opens, closes and restores customer accounts.
type AccountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	balanceSvc  portssvc.BalanceReaderSvc
	depositSvc  portssvc.DepositSvc
	refs        *ReferenceGenerator
}

// AccountServiceOption configures an AccountService
type AccountServiceOption func(*AccountService)

// WithAccountClock overrides the clock used for audit timestamps
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *AccountService) {
		s.Clock = now
	}
}

// WithAccountEvents publishes account lifecycle events
func WithAccountEvents(publisher events.Publisher) AccountServiceOption {
	return func(s *AccountService) {
		s.Events = publisher
	}
}

// WithAccountNumbers replaces the account number generator
func WithAccountNumbers(refs *ReferenceGenerator) AccountServiceOption {
	return func(s *AccountService) {
		s.refs = refs
	}
}

// NewAccountService creates a new account service. depositSvc funds new
// accounts that ask for an initial deposit.
func NewAccountService(
	accountRepo portsrepo.AccountRepositoryFacade,
	balanceSvc portssvc.BalanceReaderSvc,
	depositSvc portssvc.DepositSvc,
	options ...AccountServiceOption,
) *AccountService {
	svc := &AccountService{
		accountRepo: accountRepo,
		balanceSvc:  balanceSvc,
		depositSvc:  depositSvc,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.refs == nil {
		svc.refs = NewReferenceGenerator(svc.Now, nil)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// CreateAccount opens an ACTIVE account. If the initial deposit fails the
// account still exists, so it is returned together with the error.
func (s *AccountService) CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", apperrors.ErrValidation)
	}
	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if req.InitialDeposit != nil && !req.InitialDeposit.Amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	account := domain.Account{
		AccountID:   uuid.NewString(),
		AccountType: req.AccountType,
		OwnerID:     ownerID,
		Status:      domain.AccountActive,
		AuditFields: domain.NewAuditFields(s.Now()),
	}

	var err error
	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		account.AccountNumber = s.refs.AccountNumber()
		err = s.accountRepo.SaveAccount(ctx, account)
		if err == nil || !errors.Is(err, apperrors.ErrDuplicate) {
			break
		}
		s.LogDebug(ctx, "Account number taken, retrying",
			slog.String("account_number", account.AccountNumber),
			slog.Int("attempt", attempt))
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to create account", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_number", account.AccountNumber),
		slog.String("account_type", string(account.AccountType)))
	s.PublishEvent(ctx, events.AccountCreated, account)

	if req.InitialDeposit != nil {
		_, err := s.depositSvc.Deposit(ctx, account.AccountID, dto.MovementRequest{
			Amount:      req.InitialDeposit.Amount,
			Currency:    req.InitialDeposit.Currency,
			Description: "Initial deposit",
		})
		if err != nil {
			s.LogError(ctx, err, "Initial deposit failed", slog.String("account_id", account.AccountID))
			return &account, fmt.Errorf("account %s created but initial deposit failed: %w", account.AccountNumber, err)
		}
	}
	return &account, nil
}

func (s *AccountService) CloseAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.Status == domain.AccountClosed {
		return nil, fmt.Errorf("%w: account %s is already closed", ErrInvalidState, accountID)
	}

	balances, err := s.balanceSvc.ListBalances(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if sum := domain.SumBalances(balances); !sum.IsZero() {
		return nil, fmt.Errorf("%w: account %s balances sum to %s", ErrNonZeroBalance, accountID, sum)
	}

	return s.setStatus(ctx, accountID, domain.AccountClosed, events.AccountClosed)
}

func (s *AccountService) RestoreAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.Status == domain.AccountActive {
		return nil, fmt.Errorf("%w: account %s is already active", ErrInvalidState, accountID)
	}
	return s.setStatus(ctx, accountID, domain.AccountActive, events.AccountRestored)
}

func (s *AccountService) setStatus(ctx context.Context, accountID string, status domain.AccountStatus, eventType string) (*domain.Account, error) {
	updated, err := s.accountRepo.UpdateAccountStatus(ctx, accountID, status, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to update account status",
			slog.String("account_id", accountID),
			slog.String("status", string(status)))
		return nil, fmt.Errorf("failed to set account %s to %s: %w", accountID, status, err)
	}
	s.LogInfo(ctx, "Account status changed",
		slog.String("account_id", accountID),
		slog.String("status", string(status)))
	s.PublishEvent(ctx, eventType, *updated)
	return updated, nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		}
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *AccountService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account by number", slog.String("account_number", accountNumber))
		}
		return nil, fmt.Errorf("failed to get account %s: %w", accountNumber, err)
	}
	return account, nil
}

func (s *AccountService) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list accounts of %s: %w", ownerID, err)
	}
	return accounts, nil
}
