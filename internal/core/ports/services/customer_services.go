package services

import (
	"context"

	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/SscSPs/retail_ledger/internal/dto"
)

// CustomerSvcFacade defines customer registration and lookup
type CustomerSvcFacade interface {
	// Register creates a customer with a bcrypt-hashed password.
	Register(ctx context.Context, req dto.RegisterCustomerRequest) (*domain.Customer, error)

	// GetCustomer retrieves a customer by identifier.
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)

	// Authenticate checks email/password credentials.
	Authenticate(ctx context.Context, email string, password string) (*domain.Customer, error)
}

// TokenSvc issues bearer tokens for authenticated customers
type TokenSvc interface {
	GenerateToken(customerID string) (string, error)
}
