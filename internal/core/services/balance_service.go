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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceService resolves and mutates per-(account, currency) balances.
// Every mutation is a single store write.
type BalanceService struct {
	BaseService
	balanceRepo portsrepo.BalanceRepositoryFacade
}

// BalanceServiceOption configures a BalanceService
type BalanceServiceOption func(*BalanceService)

// WithBalanceClock overrides the clock used for audit timestamps
func WithBalanceClock(now func() time.Time) BalanceServiceOption {
	return func(s *BalanceService) {
		s.Clock = now
	}
}

// NewBalanceService creates a new balance service
func NewBalanceService(repo portsrepo.BalanceRepositoryFacade, options ...BalanceServiceOption) *BalanceService {
	svc := &BalanceService{balanceRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BalanceSvcFacade = (*BalanceService)(nil)

func (s *BalanceService) GetBalance(ctx context.Context, accountID string, currency string) (*domain.Balance, bool, error) {
	balance, err := s.balanceRepo.FindBalance(ctx, accountID, currency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, nil
		}
		s.LogError(ctx, err, "Failed to look up balance",
			slog.String("account_id", accountID),
			slog.String("currency", currency))
		return nil, false, fmt.Errorf("failed to look up %s balance of account %s: %w", currency, accountID, err)
	}
	return balance, true, nil
}

func (s *BalanceService) ListBalances(ctx context.Context, accountID string) ([]domain.Balance, error) {
	balances, err := s.balanceRepo.ListBalancesByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list balances", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list balances of account %s: %w", accountID, err)
	}
	return balances, nil
}

func (s *BalanceService) SumAcrossCurrencies(ctx context.Context, accountID string) (decimal.Decimal, error) {
	balances, err := s.ListBalances(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.SumBalances(balances), nil
}

func (s *BalanceService) TotalInCurrency(ctx context.Context, accountIDs []string, currency string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, accountID := range accountIDs {
		balance, found, err := s.GetBalance(ctx, accountID, currency)
		if err != nil {
			return decimal.Zero, err
		}
		if found {
			total = total.Add(balance.Amount)
		}
	}
	return total, nil
}

func (s *BalanceService) ApplyDelta(ctx context.Context, accountID string, currency string, delta decimal.Decimal) (*domain.Balance, error) {
	if delta.IsZero() {
		return nil, fmt.Errorf("%w: balance delta must not be zero", apperrors.ErrValidation)
	}

	existing, found, err := s.GetBalance(ctx, accountID, currency)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if found {
		updated, err := s.balanceRepo.UpdateBalanceAmount(ctx, existing.BalanceID, existing.Amount.Add(delta), now)
		if err != nil {
			s.LogError(ctx, err, "Failed to update balance",
				slog.String("balance_id", existing.BalanceID),
				slog.String("delta", delta.String()))
			return nil, fmt.Errorf("failed to update balance %s: %w", existing.BalanceID, err)
		}
		s.LogDebug(ctx, "Balance updated",
			slog.String("account_id", accountID),
			slog.String("currency", currency),
			slog.String("amount", updated.Amount.String()))
		return updated, nil
	}

	if delta.IsNegative() {
		return nil, fmt.Errorf("%w: account %s holds no %s balance to debit", apperrors.ErrInsufficientFunds, accountID, currency)
	}

	balance := domain.Balance{
		BalanceID:   uuid.NewString(),
		AccountID:   accountID,
		Currency:    currency,
		Amount:      delta,
		AuditFields: domain.NewAuditFields(now),
	}
	if err := s.balanceRepo.SaveBalance(ctx, balance); err != nil {
		s.LogError(ctx, err, "Failed to create balance",
			slog.String("account_id", accountID),
			slog.String("currency", currency))
		return nil, fmt.Errorf("failed to create %s balance for account %s: %w", currency, accountID, err)
	}
	s.LogDebug(ctx, "Balance created",
		slog.String("account_id", accountID),
		slog.String("currency", currency),
		slog.String("amount", delta.String()))
	return &balance, nil
}
