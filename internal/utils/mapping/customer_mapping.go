package mapping

import (
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/SscSPs/retail_ledger/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:   d.CustomerID,
		FullName:     d.FullName,
		Email:        d.Email,
		DateOfBirth:  d.DateOfBirth,
		PasswordHash: d.PasswordHash,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:   m.CustomerID,
		FullName:     m.FullName,
		Email:        m.Email,
		DateOfBirth:  m.DateOfBirth,
		PasswordHash: m.PasswordHash,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToValidDomainCustomer converts a stored Customer and checks it at the store boundary
func ToValidDomainCustomer(m models.Customer) (domain.Customer, error) {
	return validated(m, ToDomainCustomer, domain.ValidateCustomer)
}
