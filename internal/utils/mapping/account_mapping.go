package mapping

import (
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/SscSPs/retail_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		AccountNumber: d.AccountNumber,
		AccountType:   string(d.AccountType),
		OwnerID:       d.OwnerID,
		Status:        string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		AccountNumber: m.AccountNumber,
		AccountType:   domain.AccountType(m.AccountType),
		OwnerID:       m.OwnerID,
		Status:        domain.AccountStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToValidDomainAccount converts a stored Account and checks it at the store boundary
func ToValidDomainAccount(m models.Account) (domain.Account, error) {
	return validated(m, ToDomainAccount, domain.ValidateAccount)
}

// ToValidDomainAccountSlice converts a slice of stored Accounts, failing on the first invalid one
func ToValidDomainAccountSlice(ms []models.Account) ([]domain.Account, error) {
	return validatedSlice(ms, ToDomainAccount, domain.ValidateAccount)
}
