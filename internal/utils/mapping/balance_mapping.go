package mapping

import (
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/SscSPs/retail_ledger/internal/models"
)

// ToModelBalance converts a domain Balance to a model Balance
func ToModelBalance(d domain.Balance) models.Balance {
	return models.Balance{
		BalanceID:   d.BalanceID,
		AccountID:   d.AccountID,
		Currency:    d.Currency,
		Amount:      d.Amount,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBalance converts a model Balance to a domain Balance
func ToDomainBalance(m models.Balance) domain.Balance {
	return domain.Balance{
		BalanceID:   m.BalanceID,
		AccountID:   m.AccountID,
		Currency:    m.Currency,
		Amount:      m.Amount,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToValidDomainBalance converts a stored Balance and checks it at the store boundary
func ToValidDomainBalance(m models.Balance) (domain.Balance, error) {
	return validated(m, ToDomainBalance, domain.ValidateBalance)
}

// ToValidDomainBalanceSlice converts a slice of stored Balances, failing on the first invalid one
func ToValidDomainBalanceSlice(ms []models.Balance) ([]domain.Balance, error) {
	return validatedSlice(ms, ToDomainBalance, domain.ValidateBalance)
}
