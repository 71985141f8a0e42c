package mapping

import (
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/SscSPs/retail_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Empty optional strings are stored as NULL.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:         d.TransactionID,
		ReferenceNumber:       d.ReferenceNumber,
		DebitAccountID:        d.DebitAccountID,
		CreditAccountID:       d.CreditAccountID,
		Amount:                d.Amount,
		Currency:              d.Currency,
		Type:                  string(d.Type),
		Status:                string(d.Status),
		ExternalAccountNumber: nullableString(d.ExternalAccountNumber),
		RecipientName:         nullableString(d.RecipientName),
		Description:           nullableString(d.Description),
		CreatedAt:             d.CreatedAt,
		PostedAt:              d.PostedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:         m.TransactionID,
		ReferenceNumber:       m.ReferenceNumber,
		DebitAccountID:        m.DebitAccountID,
		CreditAccountID:       m.CreditAccountID,
		Amount:                m.Amount,
		Currency:              m.Currency,
		Type:                  domain.TransactionType(m.Type),
		Status:                domain.TransactionStatus(m.Status),
		ExternalAccountNumber: stringValue(m.ExternalAccountNumber),
		RecipientName:         stringValue(m.RecipientName),
		Description:           stringValue(m.Description),
		CreatedAt:             m.CreatedAt,
		PostedAt:              m.PostedAt,
	}
}

// ToValidDomainTransaction converts a stored Transaction and checks it at the store boundary
func ToValidDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	return validated(m, ToDomainTransaction, domain.ValidateTransaction)
}

// ToValidDomainTransactionSlice converts a slice of stored Transactions, failing on the first invalid one
func ToValidDomainTransactionSlice(ms []models.Transaction) ([]domain.Transaction, error) {
	return validatedSlice(ms, ToDomainTransaction, domain.ValidateTransaction)
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
