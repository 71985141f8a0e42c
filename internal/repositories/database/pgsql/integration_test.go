//go:build integration

package pgsql

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/SscSPs/retail_ledger/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupLedgerDB starts a disposable PostgreSQL container, applies the
// migrations and returns a pool connected to it.
func setupLedgerDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("ledger"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, container.Terminate(ctx)) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrationsDir, err := filepath.Abs("../../../../migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dsn, "file://"+migrationsDir, slog.Default()))

	pool, err := database.NewPgxPool(ctx, dsn, true)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestIntegration_LedgerStoreRoundTrip(t *testing.T) {
	pool := setupLedgerDB(t)
	repos := NewRepositoryProvider(pool)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	acc := domain.Account{
		AccountID:     "acc-1",
		AccountNumber: "ACC-000001-001",
		AccountType:   domain.Checking,
		OwnerID:       "owner-1",
		Status:        domain.AccountActive,
		AuditFields:   domain.NewAuditFields(now),
	}
	require.NoError(t, repos.AccountRepo.SaveAccount(ctx, acc))

	dup := acc
	dup.AccountID = "acc-2"
	assert.ErrorIs(t, repos.AccountRepo.SaveAccount(ctx, dup), apperrors.ErrDuplicate)

	byNumber, err := repos.AccountRepo.FindAccountByNumber(ctx, acc.AccountNumber)
	require.NoError(t, err)
	assert.Equal(t, acc.AccountID, byNumber.AccountID)

	_, err = repos.AccountRepo.FindAccountByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	closed, err := repos.AccountRepo.UpdateAccountStatus(ctx, acc.AccountID, domain.AccountClosed, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, domain.AccountClosed, closed.Status)

	bal := domain.Balance{
		BalanceID:   "bal-1",
		AccountID:   acc.AccountID,
		Currency:    "USD",
		Amount:      decimal.RequireFromString("100.25"),
		AuditFields: domain.NewAuditFields(now),
	}
	require.NoError(t, repos.BalanceRepo.SaveBalance(ctx, bal))
	bal.BalanceID = "bal-2"
	assert.ErrorIs(t, repos.BalanceRepo.SaveBalance(ctx, bal), apperrors.ErrDuplicate)

	orphan := bal
	orphan.BalanceID, orphan.AccountID = "bal-3", "nobody"
	assert.ErrorIs(t, repos.BalanceRepo.SaveBalance(ctx, orphan), apperrors.ErrNotFound)

	updated, err := repos.BalanceRepo.UpdateBalanceAmount(ctx, "bal-1", decimal.RequireFromString("-3.5"), now)
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(decimal.RequireFromString("-3.5")))

	debit := acc.AccountID
	txn := domain.Transaction{
		TransactionID:         "txn-1",
		ReferenceNumber:       "TXN-1",
		DebitAccountID:        &debit,
		Amount:                decimal.NewFromInt(5),
		Currency:              "USD",
		Type:                  domain.Transfer,
		Status:                domain.StatusPending,
		ExternalAccountNumber: "EXT-9",
		RecipientName:         "Grace",
		CreatedAt:             now,
	}
	require.NoError(t, repos.TransactionRepo.SaveTransaction(ctx, txn))

	pending, err := repos.TransactionRepo.ListTransactionsByStatus(ctx, domain.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Nil(t, pending[0].CreditAccountID)
	assert.Equal(t, "Grace", pending[0].RecipientName)

	posted := now.Add(time.Second)
	require.NoError(t, repos.TransactionRepo.UpdateTransactionStatus(ctx, "txn-1", domain.StatusCompleted, &posted))
	err = repos.TransactionRepo.UpdateTransactionStatus(ctx, "txn-1", domain.StatusFailed, nil)
	assert.ErrorIs(t, err, apperrors.ErrBusinessRule)

	debits, err := repos.TransactionRepo.ListTransactionsByDebitAccount(ctx, acc.AccountID)
	require.NoError(t, err)
	require.Len(t, debits, 1)
	assert.Equal(t, domain.StatusCompleted, debits[0].Status)
	require.NotNil(t, debits[0].PostedAt)
	assert.True(t, debits[0].PostedAt.Equal(posted))

	customer := domain.Customer{
		CustomerID:   "cust-1",
		FullName:     "Ada Lovelace",
		Email:        "ada@example.com",
		DateOfBirth:  time.Date(1990, 4, 21, 0, 0, 0, 0, time.UTC),
		PasswordHash: "$2a$10$hash",
		AuditFields:  domain.NewAuditFields(now),
	}
	require.NoError(t, repos.CustomerRepo.SaveCustomer(ctx, customer))
	customer.CustomerID = "cust-2"
	customer.Email = "ADA@example.com"
	assert.ErrorIs(t, repos.CustomerRepo.SaveCustomer(ctx, customer), apperrors.ErrDuplicate)

	found, err := repos.CustomerRepo.FindCustomerByEmail(ctx, "Ada@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "cust-1", found.CustomerID)
	assert.Equal(t, "$2a$10$hash", found.PasswordHash)
}
