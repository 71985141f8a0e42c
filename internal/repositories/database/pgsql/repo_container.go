package pgsql

import (
	portsrepo "github.com/SscSPs/retail_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres-backed ledger store.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		BalanceRepo:     newPgxBalanceRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		CustomerRepo:    newPgxCustomerRepository(dbPool),
	}
}
