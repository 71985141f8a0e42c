package pgsql

import (
	"context"

	"github.com/SscSPs/retail_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/retail_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/retail_ledger/internal/models"
	"github.com/SscSPs/retail_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const customerColumns = `customer_id, full_name, email, date_of_birth, password_hash, created_at, last_updated_at`

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) *PgxCustomerRepository {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	if err := domain.ValidateCustomer(customer); err != nil {
		return err
	}
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID, m.FullName, m.Email, m.DateOfBirth, m.PasswordHash, m.CreatedAt, m.LastUpdatedAt)
	return mapError("SaveCustomer", "customer "+m.Email, err)
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	return r.findOne(ctx, "FindCustomerByID", "customer "+customerID, query, customerID)
}

// FindCustomerByEmail matches case-insensitively, like the unique index.
func (r *PgxCustomerRepository) FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE lower(email) = lower($1);`
	return r.findOne(ctx, "FindCustomerByEmail", "customer "+email, query, email)
}

func (r *PgxCustomerRepository) findOne(ctx context.Context, op, what, query string, args ...any) (*domain.Customer, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, what, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Customer])
	if err != nil {
		return nil, mapError(op, what, err)
	}
	c, err := mapping.ToValidDomainCustomer(m)
	if err != nil {
		return nil, invalidRow(op, what, err)
	}
	return &c, nil
}
