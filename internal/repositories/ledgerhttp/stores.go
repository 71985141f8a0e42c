package ledgerhttp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/retail_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/retail_ledger/internal/models"
	"github.com/SscSPs/retail_ledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

// NewRepositoryProvider wires the remote ledger store. One client serves every repository.
func NewRepositoryProvider(c *Client) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     c,
		BalanceRepo:     c,
		TransactionRepo: c,
		CustomerRepo:    c,
	}
}

var (
	_ portsrepo.AccountRepositoryFacade     = (*Client)(nil)
	_ portsrepo.BalanceRepositoryFacade     = (*Client)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*Client)(nil)
	_ portsrepo.CustomerRepositoryFacade    = (*Client)(nil)
)

// --- accounts ---

func (c *Client) SaveAccount(ctx context.Context, account domain.Account) error {
	if err := domain.ValidateAccount(account); err != nil {
		return err
	}
	return c.call(ctx, "SaveAccount", http.MethodPost, "/accounts", mapping.ToModelAccount(account), nil)
}

func (c *Client) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return c.getAccount(ctx, "FindAccountByID", "/accounts/"+segment(accountID))
}

func (c *Client) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	return c.getAccount(ctx, "FindAccountByNumber", "/accounts/account-number/"+segment(accountNumber))
}

func (c *Client) getAccount(ctx context.Context, op, path string) (*domain.Account, error) {
	var m models.Account
	if err := c.call(ctx, op, http.MethodGet, path, nil, &m); err != nil {
		return nil, err
	}
	acc, err := mapping.ToValidDomainAccount(m)
	if err != nil {
		return nil, invalidRecord(op, err)
	}
	return &acc, nil
}

func (c *Client) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	var ms []models.Account
	if err := c.call(ctx, "ListAccountsByOwner", http.MethodGet, "/accounts/customer/"+segment(ownerID), nil, &ms); err != nil {
		return nil, err
	}
	accounts, err := mapping.ToValidDomainAccountSlice(ms)
	if err != nil {
		return nil, invalidRecord("ListAccountsByOwner", err)
	}
	return accounts, nil
}

// UpdateAccountStatus maps CLOSED to the close endpoint and ACTIVE to restore.
// The remote service stamps its own update time, so now is not sent.
func (c *Client) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, now time.Time) (*domain.Account, error) {
	var method, path string
	switch status {
	case domain.AccountClosed:
		method, path = http.MethodDelete, "/accounts/"+segment(accountID)
	case domain.AccountActive:
		method, path = http.MethodPut, "/accounts/"+segment(accountID)+"/restore"
	default:
		return nil, fmt.Errorf("%w: unknown account status %q", apperrors.ErrValidation, status)
	}

	var m models.Account
	if err := c.call(ctx, "UpdateAccountStatus", method, path, nil, &m); err != nil {
		return nil, err
	}
	if m.AccountID == "" {
		// empty answer, e.g. 204 on close
		return c.FindAccountByID(ctx, accountID)
	}
	acc, err := mapping.ToValidDomainAccount(m)
	if err != nil {
		return nil, invalidRecord("UpdateAccountStatus", err)
	}
	return &acc, nil
}

// --- balances ---

func (c *Client) SaveBalance(ctx context.Context, balance domain.Balance) error {
	if err := domain.ValidateBalance(balance); err != nil {
		return err
	}
	return c.call(ctx, "SaveBalance", http.MethodPost, "/balances", mapping.ToModelBalance(balance), nil)
}

func (c *Client) FindBalanceByID(ctx context.Context, balanceID string) (*domain.Balance, error) {
	var m models.Balance
	if err := c.call(ctx, "FindBalanceByID", http.MethodGet, "/balances/"+segment(balanceID), nil, &m); err != nil {
		return nil, err
	}
	b, err := mapping.ToValidDomainBalance(m)
	if err != nil {
		return nil, invalidRecord("FindBalanceByID", err)
	}
	return &b, nil
}

// FindBalance has no dedicated endpoint; it picks the currency out of the account's balances.
func (c *Client) FindBalance(ctx context.Context, accountID string, currency string) (*domain.Balance, error) {
	balances, err := c.ListBalancesByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for _, b := range balances {
		if b.Currency == currency {
			return &b, nil
		}
	}
	return nil, fmt.Errorf("%w: %s balance of account %s", apperrors.ErrNotFound, currency, accountID)
}

func (c *Client) ListBalancesByAccount(ctx context.Context, accountID string) ([]domain.Balance, error) {
	var ms []models.Balance
	if err := c.call(ctx, "ListBalancesByAccount", http.MethodGet, "/balances/account/"+segment(accountID), nil, &ms); err != nil {
		return nil, err
	}
	balances, err := mapping.ToValidDomainBalanceSlice(ms)
	if err != nil {
		return nil, invalidRecord("ListBalancesByAccount", err)
	}
	return balances, nil
}

func (c *Client) UpdateBalanceAmount(ctx context.Context, balanceID string, amount decimal.Decimal, now time.Time) (*domain.Balance, error) {
	var m models.Balance
	body := models.BalanceUpdate{Amount: amount, LastUpdatedAt: now}
	if err := c.call(ctx, "UpdateBalanceAmount", http.MethodPut, "/balances/"+segment(balanceID), body, &m); err != nil {
		return nil, err
	}
	if m.BalanceID == "" {
		return c.FindBalanceByID(ctx, balanceID)
	}
	b, err := mapping.ToValidDomainBalance(m)
	if err != nil {
		return nil, invalidRecord("UpdateBalanceAmount", err)
	}
	return &b, nil
}

// --- transactions ---

func (c *Client) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	if err := domain.ValidateTransaction(txn); err != nil {
		return err
	}
	return c.call(ctx, "SaveTransaction", http.MethodPost, "/transactions", mapping.ToModelTransaction(txn), nil)
}

func (c *Client) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return c.getTransaction(ctx, "FindTransactionByID", "/transactions/"+segment(transactionID))
}

func (c *Client) FindTransactionByReference(ctx context.Context, referenceNumber string) (*domain.Transaction, error) {
	return c.getTransaction(ctx, "FindTransactionByReference", "/transactions/reference/"+segment(referenceNumber))
}

func (c *Client) getTransaction(ctx context.Context, op, path string) (*domain.Transaction, error) {
	var m models.Transaction
	if err := c.call(ctx, op, http.MethodGet, path, nil, &m); err != nil {
		return nil, err
	}
	t, err := mapping.ToValidDomainTransaction(m)
	if err != nil {
		return nil, invalidRecord(op, err)
	}
	return &t, nil
}

func (c *Client) ListTransactionsByDebitAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return c.listTransactions(ctx, "ListTransactionsByDebitAccount", "/transactions/debitAccount/"+segment(accountID))
}

func (c *Client) ListTransactionsByCreditAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return c.listTransactions(ctx, "ListTransactionsByCreditAccount", "/transactions/creditAccount/"+segment(accountID))
}

func (c *Client) ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	return c.listTransactions(ctx, "ListTransactionsByStatus", "/transactions/status/"+segment(string(status)))
}

func (c *Client) listTransactions(ctx context.Context, op, path string) ([]domain.Transaction, error) {
	var ms []models.Transaction
	if err := c.call(ctx, op, http.MethodGet, path, nil, &ms); err != nil {
		return nil, err
	}
	txns, err := mapping.ToValidDomainTransactionSlice(ms)
	if err != nil {
		return nil, invalidRecord(op, err)
	}
	return txns, nil
}

func (c *Client) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, postedAt *time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown transaction status %q", apperrors.ErrValidation, status)
	}
	body := models.TransactionStatusUpdate{Status: string(status), PostedAt: postedAt}
	return c.call(ctx, "UpdateTransactionStatus", http.MethodPut, "/transactions/"+segment(transactionID), body, nil)
}

// --- customers ---

func (c *Client) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	if err := domain.ValidateCustomer(customer); err != nil {
		return err
	}
	return c.call(ctx, "SaveCustomer", http.MethodPost, "/customers", mapping.ToModelCustomer(customer), nil)
}

func (c *Client) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return c.getCustomer(ctx, "FindCustomerByID", "/customers/"+segment(customerID))
}

func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return c.getCustomer(ctx, "FindCustomerByEmail", "/customers/email/"+segment(email))
}

func (c *Client) getCustomer(ctx context.Context, op, path string) (*domain.Customer, error) {
	var m models.Customer
	if err := c.call(ctx, op, http.MethodGet, path, nil, &m); err != nil {
		return nil, err
	}
	cust, err := mapping.ToValidDomainCustomer(m)
	if err != nil {
		return nil, invalidRecord(op, err)
	}
	return &cust, nil
}
