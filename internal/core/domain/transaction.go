package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a money movement.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	Transfer   TransactionType = "TRANSFER"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case Deposit, Withdrawal, Transfer:
		return true
	}
	return false
}

// TransactionStatus tracks a transaction through its write-ahead lifecycle.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
)

// Valid reports whether s is a known transaction status.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further status change is allowed.
func (s TransactionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// TransferMode selects whether the credit leg stays inside the ledger.
type TransferMode string

const (
	TransferInternal TransferMode = "INTERNAL"
	TransferExternal TransferMode = "EXTERNAL"
)

// TransferStage names the last step a transfer attempt finished before it stopped.
// Completion and failure are recorded as the transaction status instead.
type TransferStage string

const (
	StageTransactionRecorded TransferStage = "TRANSACTION_RECORDED"
	StageDebitApplied        TransferStage = "DEBIT_APPLIED"
	StageBalancesApplied     TransferStage = "BALANCES_APPLIED"
)

// Transaction is an immutable record of money moving into, out of, or between accounts.
// Only Status (and PostedAt alongside it) changes after creation.
type Transaction struct {
	TransactionID         string            `json:"transactionID" validate:"required"`
	ReferenceNumber       string            `json:"referenceNumber" validate:"required"`
	DebitAccountID        *string           `json:"debitAccountID,omitempty" validate:"required_without=CreditAccountID"`
	CreditAccountID       *string           `json:"creditAccountID,omitempty" validate:"required_without=DebitAccountID"`
	Amount                decimal.Decimal   `json:"amount"`
	Currency              string            `json:"currency" validate:"required,iso4217"`
	Type                  TransactionType   `json:"type" validate:"required,oneof=DEPOSIT WITHDRAWAL TRANSFER"`
	Status                TransactionStatus `json:"status" validate:"required,oneof=PENDING COMPLETED FAILED"`
	ExternalAccountNumber string            `json:"externalAccountNumber,omitempty"`
	RecipientName         string            `json:"recipientName,omitempty"`
	Description           string            `json:"description,omitempty"`
	CreatedAt             time.Time         `json:"createdAt"`
	PostedAt              *time.Time        `json:"postedAt,omitempty"`
}

// Debits reports whether the transaction takes money out of accountID.
func (t Transaction) Debits(accountID string) bool {
	return t.DebitAccountID != nil && *t.DebitAccountID == accountID
}

// Credits reports whether the transaction puts money into accountID.
func (t Transaction) Credits(accountID string) bool {
	return t.CreditAccountID != nil && *t.CreditAccountID == accountID
}

// Touches reports whether accountID is on either side of the transaction.
func (t Transaction) Touches(accountID string) bool {
	return t.Debits(accountID) || t.Credits(accountID)
}

// IsExternal reports whether the credit side is outside the ledger.
func (t Transaction) IsExternal() bool {
	return t.CreditAccountID == nil && t.ExternalAccountNumber != ""
}
