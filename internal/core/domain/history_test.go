package domain_test

import (
	"slices"
	"testing"
	"time"

	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func txn(id string, debit, credit *string, at time.Time, status domain.TransactionStatus, typ domain.TransactionType) domain.Transaction {
	return domain.Transaction{
		TransactionID:   id,
		ReferenceNumber: "TXN-" + id,
		DebitAccountID:  debit,
		CreditAccountID: credit,
		Amount:          decimal.NewFromInt(10),
		Currency:        "USD",
		Type:            typ,
		Status:          status,
		CreatedAt:       at,
	}
}

func TestNewHistory_DeduplicatesAndOrdersNewestFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	shared := txn("t2", strPtr("A"), strPtr("B"), base.Add(time.Hour), domain.StatusCompleted, domain.Transfer)
	debits := []domain.Transaction{
		txn("t1", strPtr("A"), nil, base, domain.StatusCompleted, domain.Withdrawal),
		shared,
	}
	credits := []domain.Transaction{
		shared,
		txn("t3", nil, strPtr("B"), base.Add(2*time.Hour), domain.StatusCompleted, domain.Deposit),
	}

	h := domain.NewHistory(debits, credits)

	require.Equal(t, 3, h.Len())
	ids := make([]string, 0, 3)
	for tx := range h.All() {
		ids = append(ids, tx.TransactionID)
	}
	assert.Equal(t, []string{"t3", "t2", "t1"}, ids)
}

func TestHistory_AllIsRestartable(t *testing.T) {
	base := time.Now()
	h := domain.NewHistory([]domain.Transaction{
		txn("x", strPtr("A"), nil, base, domain.StatusCompleted, domain.Withdrawal),
		txn("y", nil, strPtr("A"), base.Add(time.Second), domain.StatusPending, domain.Deposit),
	})

	first := slices.Collect(h.All())
	second := slices.Collect(h.All())
	assert.Equal(t, first, second)
}

func TestTransactionFilter_Matches(t *testing.T) {
	completed := domain.StatusCompleted
	failed := domain.StatusFailed
	deposit := domain.Deposit
	transfer := domain.Transfer
	tx := txn("t", strPtr("A"), strPtr("B"), time.Now(), domain.StatusCompleted, domain.Transfer)

	tests := []struct {
		name   string
		filter domain.TransactionFilter
		want   bool
	}{
		{name: "empty filter passes everything", filter: domain.TransactionFilter{}, want: true},
		{name: "account on credit side", filter: domain.TransactionFilter{AccountID: strPtr("B")}, want: true},
		{name: "unrelated account", filter: domain.TransactionFilter{AccountID: strPtr("C")}, want: false},
		{name: "status matches", filter: domain.TransactionFilter{Status: &completed}, want: true},
		{name: "status differs", filter: domain.TransactionFilter{Status: &failed}, want: false},
		{name: "all criteria anded", filter: domain.TransactionFilter{AccountID: strPtr("A"), Status: &completed, Type: &transfer}, want: true},
		{name: "one criterion fails", filter: domain.TransactionFilter{AccountID: strPtr("A"), Status: &completed, Type: &deposit}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tx))
		})
	}
}

func TestFilter_IsIdempotent(t *testing.T) {
	base := time.Now()
	pending := domain.StatusPending
	h := domain.NewHistory([]domain.Transaction{
		txn("1", strPtr("A"), nil, base, domain.StatusPending, domain.Withdrawal),
		txn("2", strPtr("A"), nil, base.Add(time.Second), domain.StatusCompleted, domain.Withdrawal),
		txn("3", nil, strPtr("A"), base.Add(2*time.Second), domain.StatusPending, domain.Deposit),
	})
	f := domain.TransactionFilter{Status: &pending}

	first := h.Filter(f).Slice()
	second := h.Filter(f).Slice()

	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.Equal(t, "3", first[0].TransactionID)
}

func TestClassify(t *testing.T) {
	owned := domain.OwnedSet([]string{"A", "B"})
	now := time.Now()

	tests := []struct {
		name string
		tx   domain.Transaction
		want domain.Direction
	}{
		{name: "deposit into owned", tx: txn("1", nil, strPtr("A"), now, domain.StatusCompleted, domain.Deposit), want: domain.Incoming},
		{name: "incoming from foreign account", tx: txn("2", strPtr("Z"), strPtr("A"), now, domain.StatusCompleted, domain.Transfer), want: domain.Incoming},
		{name: "withdrawal from owned", tx: txn("3", strPtr("A"), nil, now, domain.StatusCompleted, domain.Withdrawal), want: domain.Outgoing},
		{name: "between owned accounts", tx: txn("4", strPtr("A"), strPtr("B"), now, domain.StatusCompleted, domain.Transfer), want: domain.Neutral},
		{name: "neither side owned", tx: txn("5", strPtr("Y"), strPtr("Z"), now, domain.StatusCompleted, domain.Transfer), want: domain.Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Classify(tt.tx, owned))
		})
	}
}
