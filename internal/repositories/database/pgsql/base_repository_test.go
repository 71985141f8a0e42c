package pgsql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "accounts_account_number_key"}, apperrors.ErrDuplicate},
		{"foreign key violation", &pgconn.PgError{Code: pgForeignKeyViolation}, apperrors.ErrNotFound},
		{"check violation", &pgconn.PgError{Code: pgCheckViolation}, apperrors.ErrValidation},
		{"other pg error", &pgconn.PgError{Code: "53300"}, apperrors.ErrTransport},
		{"connection failure", errors.New("dial tcp: connection refused"), apperrors.ErrTransport},
		{"cancelled", context.Canceled, context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError("Op", "row", tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}

	assert.NoError(t, mapError("Op", "row", nil))
	assert.NotErrorIs(t, mapError("Op", "row", context.Canceled), apperrors.ErrTransport)
}

func TestInvalidRow(t *testing.T) {
	cause := fmt.Errorf("%w: invalid account: field Status failed \"oneof\"", apperrors.ErrValidation)

	err := invalidRow("FindAccountByID", "account acc-1", cause)

	assert.ErrorIs(t, err, apperrors.ErrTransport)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "account acc-1")
}
