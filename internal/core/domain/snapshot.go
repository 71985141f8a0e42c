package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerSnapshot is one owner's view of the ledger as fetched at LoadedAt.
// Every aggregate on it is recomputed from the fetched rows.
type LedgerSnapshot struct {
	OwnerID  string
	Accounts []Account
	Balances map[string][]Balance // keyed by AccountID
	History  History
	LoadedAt time.Time
}

// ActiveAccounts returns the owner's ACTIVE accounts.
func (s *LedgerSnapshot) ActiveAccounts() []Account {
	active, _ := PartitionAccounts(s.Accounts)
	return active
}

// ClosedAccounts returns the owner's CLOSED accounts.
func (s *LedgerSnapshot) ClosedAccounts() []Account {
	_, closed := PartitionAccounts(s.Accounts)
	return closed
}

// Account looks up one of the owner's accounts.
func (s *LedgerSnapshot) Account(accountID string) (Account, bool) {
	for _, a := range s.Accounts {
		if a.AccountID == accountID {
			return a, true
		}
	}
	return Account{}, false
}

// Owns reports whether accountID belongs to the owner.
func (s *LedgerSnapshot) Owns(accountID string) bool {
	_, ok := s.Account(accountID)
	return ok
}

// BalanceOf returns the amount accountID holds in currency, zero when there is no row.
func (s *LedgerSnapshot) BalanceOf(accountID, currency string) decimal.Decimal {
	for _, b := range s.Balances[accountID] {
		if b.Currency == currency {
			return b.Amount
		}
	}
	return decimal.Zero
}

// TotalInCurrency sums the given currency across the owner's active accounts.
func (s *LedgerSnapshot) TotalInCurrency(currency string) decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.ActiveAccounts() {
		total = total.Add(s.BalanceOf(a.AccountID, currency))
	}
	return total
}

// Currencies lists every currency with a balance row on an active account, sorted.
func (s *LedgerSnapshot) Currencies() []string {
	set := make(map[string]struct{})
	for _, a := range s.ActiveAccounts() {
		for _, b := range s.Balances[a.AccountID] {
			set[b.Currency] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Totals maps each currency to TotalInCurrency.
func (s *LedgerSnapshot) Totals() map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, c := range s.Currencies() {
		totals[c] = s.TotalInCurrency(c)
	}
	return totals
}

// Direction classifies t against all of the owner's accounts.
func (s *LedgerSnapshot) Direction(t Transaction) Direction {
	return Classify(t, OwnedSet(AccountIDs(s.Accounts)))
}
