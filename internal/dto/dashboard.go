package dto

import (
	"time"

	"github.com/SscSPs/retail_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

const recentTransactionsOnDashboard = 10

// AccountSummary is an account together with its balances.
type AccountSummary struct {
	AccountResponse
	Balances []BalanceResponse `json:"balances"`
}

// DashboardResponse is the owner's ledger as loaded by a session.
type DashboardResponse struct {
	OwnerID            string                     `json:"ownerID"`
	ActiveAccounts     []AccountSummary           `json:"activeAccounts"`
	ClosedAccounts     []AccountSummary           `json:"closedAccounts"`
	Totals             map[string]decimal.Decimal `json:"totals" swaggertype:"object"`
	RecentTransactions []TransactionResponse      `json:"recentTransactions"`
	LoadedAt           time.Time                  `json:"loadedAt"`
}

// ToDashboardResponse renders a snapshot.
func ToDashboardResponse(s *domain.LedgerSnapshot) DashboardResponse {
	summaries := func(accounts []domain.Account) []AccountSummary {
		out := make([]AccountSummary, len(accounts))
		for i, a := range accounts {
			out[i] = AccountSummary{
				AccountResponse: ToAccountResponse(&a),
				Balances:        ToListBalanceResponse(s.Balances[a.AccountID]),
			}
		}
		return out
	}

	recent := make([]TransactionResponse, 0, recentTransactionsOnDashboard)
	for t := range s.History.All() {
		if len(recent) == recentTransactionsOnDashboard {
			break
		}
		recent = append(recent, ToTransactionResponse(t, s.Direction(t)))
	}

	return DashboardResponse{
		OwnerID:            s.OwnerID,
		ActiveAccounts:     summaries(s.ActiveAccounts()),
		ClosedAccounts:     summaries(s.ClosedAccounts()),
		Totals:             s.Totals(),
		RecentTransactions: recent,
		LoadedAt:           s.LoadedAt,
	}
}
