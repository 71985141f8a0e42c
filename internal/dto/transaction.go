package dto

import (
	"time"

	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest asks the transfer engine to move money out of FromAccountID.
// INTERNAL transfers need ToAccountID (or ToAccountNumber); EXTERNAL transfers need ExternalAccountNumber
// and RecipientName. The service enforces both.
type TransferRequest struct {
	FromAccountID         string              `json:"fromAccountID" binding:"required"`
	Mode                  domain.TransferMode `json:"mode" binding:"required,oneof=INTERNAL EXTERNAL"`
	ToAccountID           string              `json:"toAccountID"`
	ToAccountNumber       string              `json:"toAccountNumber"` // alternative to ToAccountID
	ExternalAccountNumber string              `json:"externalAccountNumber"`
	RecipientName         string              `json:"recipientName"`
	Amount                decimal.Decimal     `json:"amount" swaggertype:"string" example:"40.00"`
	Currency              string              `json:"currency" binding:"required,iso4217" example:"USD"`
	Description           string              `json:"description" binding:"max=255"`
}

// MovementRequest is a single-leg cash movement (deposit or withdrawal).
type MovementRequest struct {
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"25.00"`
	Currency    string          `json:"currency" binding:"required,iso4217" example:"USD"`
	Description string          `json:"description" binding:"max=255"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID         string                   `json:"transactionID"`
	ReferenceNumber       string                   `json:"referenceNumber"`
	DebitAccountID        *string                  `json:"debitAccountID,omitempty"`
	CreditAccountID       *string                  `json:"creditAccountID,omitempty"`
	Amount                decimal.Decimal          `json:"amount" swaggertype:"string"`
	Currency              string                   `json:"currency"`
	Type                  domain.TransactionType   `json:"type"`
	Status                domain.TransactionStatus `json:"status"`
	Direction             domain.Direction         `json:"direction,omitempty"`
	ExternalAccountNumber string                   `json:"externalAccountNumber,omitempty"`
	RecipientName         string                   `json:"recipientName,omitempty"`
	Description           string                   `json:"description,omitempty"`
	CreatedAt             time.Time                `json:"createdAt"`
	PostedAt              *time.Time               `json:"postedAt,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
// direction may be empty when the caller has no owned set to classify against.
func ToTransactionResponse(t domain.Transaction, direction domain.Direction) TransactionResponse {
	return TransactionResponse{
		TransactionID:         t.TransactionID,
		ReferenceNumber:       t.ReferenceNumber,
		DebitAccountID:        t.DebitAccountID,
		CreditAccountID:       t.CreditAccountID,
		Amount:                t.Amount,
		Currency:              t.Currency,
		Type:                  t.Type,
		Status:                t.Status,
		Direction:             direction,
		ExternalAccountNumber: t.ExternalAccountNumber,
		RecipientName:         t.RecipientName,
		Description:           t.Description,
		CreatedAt:             t.CreatedAt,
		PostedAt:              t.PostedAt,
	}
}

// ListTransactionsParams defines query parameters for the caller's transaction history.
type ListTransactionsParams struct {
	AccountID string                   `form:"accountID"`
	Status    domain.TransactionStatus `form:"status" binding:"omitempty,oneof=PENDING COMPLETED FAILED"`
	Type      domain.TransactionType   `form:"type" binding:"omitempty,oneof=DEPOSIT WITHDRAWAL TRANSFER"`
	Limit     int                      `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken string                   `form:"nextToken"`
}

// Filter builds the domain filter for the set parameters.
func (p ListTransactionsParams) Filter() domain.TransactionFilter {
	var f domain.TransactionFilter
	if p.AccountID != "" {
		id := p.AccountID
		f.AccountID = &id
	}
	if p.Status != "" {
		s := p.Status
		f.Status = &s
	}
	if p.Type != "" {
		t := p.Type
		f.Type = &t
	}
	return f
}

// ListTransactionsResponse wraps a page of history.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ListIncompleteParams selects PENDING transactions older than a cut-off.
type ListIncompleteParams struct {
	OlderThan string `form:"olderThan,default=15m"`
}

// TransferResponse returns the completed transaction and the refreshed dashboard.
type TransferResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Dashboard   DashboardResponse   `json:"dashboard"`
}
