package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewTransportError("begin", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewTransportError("commit", err)
	}
	return nil
}

// Rollback rolls back a transaction. Rolling back a finished transaction is not an error.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewTransportError("rollback", err)
	}
	return nil
}

// mapError translates driver errors into the ledger store error kinds.
// what names the row for the message, e.g. "account acc-1".
func mapError(op string, what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s (%s)", apperrors.ErrDuplicate, what, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s references a missing row (%s)", apperrors.ErrNotFound, what, pgErr.ConstraintName)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s violates %s", apperrors.ErrValidation, what, pgErr.ConstraintName)
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apperrors.NewTransportError(op, err)
}

// invalidRow reports a stored row that fails store-boundary validation once mapped.
// The result matches both ErrTransport and ErrValidation.
func invalidRow(op string, what string, err error) error {
	return apperrors.NewTransportError(op, fmt.Errorf("%s: %w", what, err))
}
