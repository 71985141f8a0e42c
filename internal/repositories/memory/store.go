// Package memory is a process-local Ledger Store used for development and tests.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/retail_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Store keeps every ledger table in maps behind one mutex, which serialises
// all writes. Values are copied in and out.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]domain.Account
	balances     map[string]domain.Balance
	transactions map[string]domain.Transaction
	customers    map[string]domain.Customer
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]domain.Account),
		balances:     make(map[string]domain.Balance),
		transactions: make(map[string]domain.Transaction),
		customers:    make(map[string]domain.Customer),
	}
}

// NewRepositoryProvider exposes one store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     store,
		BalanceRepo:     store,
		TransactionRepo: store,
		CustomerRepo:    store,
	}
}

var (
	_ portsrepo.AccountRepositoryFacade     = (*Store)(nil)
	_ portsrepo.BalanceRepositoryFacade     = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.CustomerRepositoryFacade    = (*Store)(nil)
)

// --- accounts ---

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	if err := domain.ValidateAccount(account); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.AccountID]; ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	for _, a := range s.accounts {
		if a.AccountNumber == account.AccountNumber {
			return fmt.Errorf("%w: account number %s", apperrors.ErrDuplicate, account.AccountNumber)
		}
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return &a, nil
}

func (s *Store) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.AccountNumber == accountNumber {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("%w: account number %s", apperrors.ErrNotFound, accountNumber)
}

func (s *Store) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Account, 0)
	for _, a := range s.accounts {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b domain.Account) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.AccountNumber, b.AccountNumber)
	})
	return out, nil
}

func (s *Store) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, now time.Time) (*domain.Account, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown account status %q", apperrors.ErrValidation, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	a.Status = status
	a.LastUpdatedAt = now
	s.accounts[accountID] = a
	return &a, nil
}

// --- balances ---

func (s *Store) SaveBalance(ctx context.Context, balance domain.Balance) error {
	if err := domain.ValidateBalance(balance); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[balance.AccountID]; !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, balance.AccountID)
	}
	if _, ok := s.balances[balance.BalanceID]; ok {
		return fmt.Errorf("%w: balance %s", apperrors.ErrDuplicate, balance.BalanceID)
	}
	for _, b := range s.balances {
		if b.AccountID == balance.AccountID && b.Currency == balance.Currency {
			return fmt.Errorf("%w: %s balance of account %s", apperrors.ErrDuplicate, balance.Currency, balance.AccountID)
		}
	}
	s.balances[balance.BalanceID] = balance
	return nil
}

func (s *Store) FindBalanceByID(ctx context.Context, balanceID string) (*domain.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.balances[balanceID]
	if !ok {
		return nil, fmt.Errorf("%w: balance %s", apperrors.ErrNotFound, balanceID)
	}
	return &b, nil
}

func (s *Store) FindBalance(ctx context.Context, accountID string, currency string) (*domain.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.balances {
		if b.AccountID == accountID && b.Currency == currency {
			return &b, nil
		}
	}
	return nil, fmt.Errorf("%w: %s balance of account %s", apperrors.ErrNotFound, currency, accountID)
}

func (s *Store) ListBalancesByAccount(ctx context.Context, accountID string) ([]domain.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Balance, 0)
	for _, b := range s.balances {
		if b.AccountID == accountID {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b domain.Balance) int {
		return cmp.Compare(a.Currency, b.Currency)
	})
	return out, nil
}

func (s *Store) UpdateBalanceAmount(ctx context.Context, balanceID string, amount decimal.Decimal, now time.Time) (*domain.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.balances[balanceID]
	if !ok {
		return nil, fmt.Errorf("%w: balance %s", apperrors.ErrNotFound, balanceID)
	}
	b.Amount = amount
	b.LastUpdatedAt = now
	s.balances[balanceID] = b
	return &b, nil
}

// --- transactions ---

func (s *Store) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	if err := domain.ValidateTransaction(txn); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[txn.TransactionID]; ok {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
	}
	for _, t := range s.transactions {
		if t.ReferenceNumber == txn.ReferenceNumber {
			return fmt.Errorf("%w: reference %s", apperrors.ErrDuplicate, txn.ReferenceNumber)
		}
	}
	s.transactions[txn.TransactionID] = txn
	return nil
}

func (s *Store) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.transactions[transactionID]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return &t, nil
}

func (s *Store) FindTransactionByReference(ctx context.Context, referenceNumber string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.transactions {
		if t.ReferenceNumber == referenceNumber {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: reference %s", apperrors.ErrNotFound, referenceNumber)
}

func (s *Store) ListTransactionsByDebitAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return s.listTransactions(func(t domain.Transaction) bool { return t.Debits(accountID) }), nil
}

func (s *Store) ListTransactionsByCreditAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return s.listTransactions(func(t domain.Transaction) bool { return t.Credits(accountID) }), nil
}

func (s *Store) ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	return s.listTransactions(func(t domain.Transaction) bool { return t.Status == status }), nil
}

func (s *Store) listTransactions(match func(domain.Transaction) bool) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Transaction, 0)
	for _, t := range s.transactions {
		if match(t) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b domain.Transaction) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func (s *Store) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, postedAt *time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown transaction status %q", apperrors.ErrValidation, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[transactionID]
	if !ok {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	if t.Status.Terminal() {
		return fmt.Errorf("%w: transaction %s is already %s", apperrors.ErrBusinessRule, transactionID, t.Status)
	}
	t.Status = status
	t.PostedAt = postedAt
	s.transactions[transactionID] = t
	return nil
}

// --- customers ---

func (s *Store) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	if err := domain.ValidateCustomer(customer); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.customers {
		if c.CustomerID == customer.CustomerID || strings.EqualFold(c.Email, customer.Email) {
			return fmt.Errorf("%w: customer %s", apperrors.ErrDuplicate, customer.Email)
		}
	}
	s.customers[customer.CustomerID] = customer
	return nil
}

func (s *Store) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
	}
	return &c, nil
}

func (s *Store) FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if strings.EqualFold(c.Email, email) {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, email)
}
