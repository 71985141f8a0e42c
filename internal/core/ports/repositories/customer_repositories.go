package repositories

import (
	"context"

	"github.com/SscSPs/retail_ledger/internal/core/domain"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a customer by identifier.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// FindCustomerByEmail retrieves a customer by their unique email address.
	FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
