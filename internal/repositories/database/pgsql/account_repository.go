package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/retail_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/retail_ledger/internal/models"
	"github.com/SscSPs/retail_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, account_number, account_type, owner_id, status, created_at, last_updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	if err := domain.ValidateAccount(account); err != nil {
		return err
	}
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.AccountNumber,
		m.AccountType,
		m.OwnerID,
		m.Status,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	return mapError("SaveAccount", fmt.Sprintf("account %s (%s)", m.AccountID, m.AccountNumber), err)
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return r.findOne(ctx, "FindAccountByID", "account "+accountID, query, accountID)
}

func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`
	return r.findOne(ctx, "FindAccountByNumber", "account number "+accountNumber, query, accountNumber)
}

func (r *PgxAccountRepository) findOne(ctx context.Context, op, what, query string, args ...any) (*domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, what, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, mapError(op, what, err)
	}
	acc, err := mapping.ToValidDomainAccount(m)
	if err != nil {
		return nil, invalidRow(op, what, err)
	}
	return &acc, nil
}

func (r *PgxAccountRepository) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE owner_id = $1
		ORDER BY created_at, account_id;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, mapError("ListAccountsByOwner", "accounts of "+ownerID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, mapError("ListAccountsByOwner", "accounts of "+ownerID, err)
	}
	accounts, err := mapping.ToValidDomainAccountSlice(ms)
	if err != nil {
		return nil, invalidRow("ListAccountsByOwner", "accounts of "+ownerID, err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, now time.Time) (*domain.Account, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown account status %q", apperrors.ErrValidation, status)
	}
	query := `
		UPDATE accounts
		SET status = $2, last_updated_at = $3
		WHERE account_id = $1
		RETURNING ` + accountColumns + `;
	`
	return r.findOne(ctx, "UpdateAccountStatus", "account "+accountID, query, accountID, string(status), now)
}
