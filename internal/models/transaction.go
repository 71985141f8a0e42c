package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the stored form of a ledger transaction.
// Debit and credit account ids are nullable.
type Transaction struct {
	TransactionID         string          `json:"id" db:"transaction_id"`
	ReferenceNumber       string          `json:"referenceNumber" db:"reference_number"`
	DebitAccountID        *string         `json:"debitAccountId" db:"debit_account_id"`
	CreditAccountID       *string         `json:"creditAccountId" db:"credit_account_id"`
	Amount                decimal.Decimal `json:"amount" db:"amount"`
	Currency              string          `json:"currency" db:"currency"`
	Type                  string          `json:"type" db:"type"`
	Status                string          `json:"status" db:"status"`
	ExternalAccountNumber *string         `json:"externalAccountNumber,omitempty" db:"external_account_number"`
	RecipientName         *string         `json:"recipientName,omitempty" db:"recipient_name"`
	Description           *string         `json:"description,omitempty" db:"description"`
	CreatedAt             time.Time       `json:"createdAt" db:"created_at"`
	PostedAt              *time.Time      `json:"postedAt" db:"posted_at"`
}

// TransactionStatusUpdate is the body of a transaction status change.
type TransactionStatusUpdate struct {
	Status   string     `json:"status"`
	PostedAt *time.Time `json:"postedAt,omitempty"`
}
