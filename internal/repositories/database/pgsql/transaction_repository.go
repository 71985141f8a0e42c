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

const transactionColumns = `transaction_id, reference_number, debit_account_id, credit_account_id, amount, currency,
	type, status, external_account_number, recipient_name, description, created_at, posted_at`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	if err := domain.ValidateTransaction(txn); err != nil {
		return err
	}
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.ReferenceNumber,
		m.DebitAccountID,
		m.CreditAccountID,
		m.Amount,
		m.Currency,
		m.Type,
		m.Status,
		m.ExternalAccountNumber,
		m.RecipientName,
		m.Description,
		m.CreatedAt,
		m.PostedAt,
	)
	return mapError("SaveTransaction", fmt.Sprintf("transaction %s (%s)", m.TransactionID, m.ReferenceNumber), err)
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	return r.collectOne(rows, err, "FindTransactionByID", "transaction "+transactionID)
}

func (r *PgxTransactionRepository) FindTransactionByReference(ctx context.Context, referenceNumber string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE reference_number = $1;`
	rows, err := r.Pool.Query(ctx, query, referenceNumber)
	return r.collectOne(rows, err, "FindTransactionByReference", "transaction "+referenceNumber)
}

func (r *PgxTransactionRepository) ListTransactionsByDebitAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return r.list(ctx, "ListTransactionsByDebitAccount", "debit_account_id = $1", accountID)
}

func (r *PgxTransactionRepository) ListTransactionsByCreditAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return r.list(ctx, "ListTransactionsByCreditAccount", "credit_account_id = $1", accountID)
}

func (r *PgxTransactionRepository) ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	return r.list(ctx, "ListTransactionsByStatus", "status = $1", string(status))
}

func (r *PgxTransactionRepository) list(ctx context.Context, op, where string, arg any) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + where + ` ORDER BY created_at DESC, transaction_id;`
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, mapError(op, fmt.Sprintf("transactions %v", arg), err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, mapError(op, fmt.Sprintf("transactions %v", arg), err)
	}
	txns, err := mapping.ToValidDomainTransactionSlice(ms)
	if err != nil {
		return nil, invalidRow(op, fmt.Sprintf("transactions %v", arg), err)
	}
	return txns, nil
}

func (r *PgxTransactionRepository) collectOne(rows pgx.Rows, err error, op, what string) (*domain.Transaction, error) {
	if err != nil {
		return nil, mapError(op, what, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, mapError(op, what, err)
	}
	t, err := mapping.ToValidDomainTransaction(m)
	if err != nil {
		return nil, invalidRow(op, what, err)
	}
	return &t, nil
}

// UpdateTransactionStatus locks the row so that a terminal status is never overwritten.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, postedAt *time.Time) (err error) {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown transaction status %q", apperrors.ErrValidation, status)
	}
	what := "transaction " + transactionID

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil && err == nil {
			err = rbErr
		}
	}()

	var current string
	err = tx.QueryRow(ctx, `SELECT status FROM transactions WHERE transaction_id = $1 FOR UPDATE;`, transactionID).Scan(&current)
	if err != nil {
		return mapError("UpdateTransactionStatus", what, err)
	}
	if domain.TransactionStatus(current).Terminal() {
		return fmt.Errorf("%w: %s is already %s", apperrors.ErrBusinessRule, what, current)
	}

	_, err = tx.Exec(ctx, `UPDATE transactions SET status = $2, posted_at = $3 WHERE transaction_id = $1;`,
		transactionID, string(status), postedAt)
	if err != nil {
		return mapError("UpdateTransactionStatus", what, err)
	}
	return r.Commit(ctx, tx)
}
