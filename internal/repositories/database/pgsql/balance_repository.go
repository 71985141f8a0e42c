package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/retail_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/retail_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/retail_ledger/internal/models"
	"github.com/SscSPs/retail_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const balanceColumns = `balance_id, account_id, currency, amount, created_at, last_updated_at`

type PgxBalanceRepository struct {
	BaseRepository
}

func newPgxBalanceRepository(pool *pgxpool.Pool) *PgxBalanceRepository {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

func (r *PgxBalanceRepository) SaveBalance(ctx context.Context, balance domain.Balance) error {
	if err := domain.ValidateBalance(balance); err != nil {
		return err
	}
	m := mapping.ToModelBalance(balance)
	query := `
		INSERT INTO balances (` + balanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, m.BalanceID, m.AccountID, m.Currency, m.Amount, m.CreatedAt, m.LastUpdatedAt)
	return mapError("SaveBalance", fmt.Sprintf("%s balance of account %s", m.Currency, m.AccountID), err)
}

func (r *PgxBalanceRepository) FindBalanceByID(ctx context.Context, balanceID string) (*domain.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM balances WHERE balance_id = $1;`
	return r.findOne(ctx, "FindBalanceByID", "balance "+balanceID, query, balanceID)
}

func (r *PgxBalanceRepository) FindBalance(ctx context.Context, accountID string, currency string) (*domain.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM balances WHERE account_id = $1 AND currency = $2;`
	return r.findOne(ctx, "FindBalance", fmt.Sprintf("%s balance of account %s", currency, accountID), query, accountID, currency)
}

func (r *PgxBalanceRepository) ListBalancesByAccount(ctx context.Context, accountID string) ([]domain.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM balances WHERE account_id = $1 ORDER BY currency;`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, mapError("ListBalancesByAccount", "balances of account "+accountID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Balance])
	if err != nil {
		return nil, mapError("ListBalancesByAccount", "balances of account "+accountID, err)
	}
	balances, err := mapping.ToValidDomainBalanceSlice(ms)
	if err != nil {
		return nil, invalidRow("ListBalancesByAccount", "balances of account "+accountID, err)
	}
	return balances, nil
}

func (r *PgxBalanceRepository) UpdateBalanceAmount(ctx context.Context, balanceID string, amount decimal.Decimal, now time.Time) (*domain.Balance, error) {
	query := `
		UPDATE balances
		SET amount = $2, last_updated_at = $3
		WHERE balance_id = $1
		RETURNING ` + balanceColumns + `;
	`
	return r.findOne(ctx, "UpdateBalanceAmount", "balance "+balanceID, query, balanceID, amount, now)
}

func (r *PgxBalanceRepository) findOne(ctx context.Context, op, what, query string, args ...any) (*domain.Balance, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, what, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Balance])
	if err != nil {
		return nil, mapError(op, what, err)
	}
	b, err := mapping.ToValidDomainBalance(m)
	if err != nil {
		return nil, invalidRow(op, what, err)
	}
	return &b, nil
}
