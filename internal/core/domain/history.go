package domain

import (
	"iter"
	"slices"
	"strings"
)

// Direction is how a transaction looks from the point of view of a set of owned accounts.
type Direction string

const (
	Incoming Direction = "INCOMING"
	Outgoing Direction = "OUTGOING"
	Neutral  Direction = "NEUTRAL"
)

// TransactionFilter selects transactions. Nil fields match everything; set fields are ANDed.
type TransactionFilter struct {
	AccountID *string
	Status    *TransactionStatus
	Type      *TransactionType
}

// Matches reports whether t satisfies every set criterion of f.
func (f TransactionFilter) Matches(t Transaction) bool {
	if f.AccountID != nil && !t.Touches(*f.AccountID) {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	return true
}

// History is a deduplicated transaction list ordered newest first.
type History struct {
	items []Transaction
}

// NewHistory merges the given lists, keeps the first occurrence of each
// TransactionID and orders the result by CreatedAt descending (ties by ID).
func NewHistory(lists ...[]Transaction) History {
	seen := make(map[string]struct{})
	merged := make([]Transaction, 0)
	for _, list := range lists {
		for _, t := range list {
			if _, ok := seen[t.TransactionID]; ok {
				continue
			}
			seen[t.TransactionID] = struct{}{}
			merged = append(merged, t)
		}
	}
	slices.SortStableFunc(merged, func(a, b Transaction) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.TransactionID, b.TransactionID)
	})
	return History{items: merged}
}

// All yields the transactions in order. The sequence can be ranged over repeatedly.
func (h History) All() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, t := range h.items {
			if !yield(t) {
				return
			}
		}
	}
}

// Len returns the number of transactions.
func (h History) Len() int {
	return len(h.items)
}

// Slice returns a copy of the ordered transactions.
func (h History) Slice() []Transaction {
	return slices.Clone(h.items)
}

// Filter returns the transactions of h matching f, keeping the order.
func (h History) Filter(f TransactionFilter) History {
	return History{items: slices.Collect(FilterTransactions(h.All(), f))}
}

// FilterTransactions lazily yields the elements of seq that match f.
func FilterTransactions(seq iter.Seq[Transaction], f TransactionFilter) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for t := range seq {
			if !f.Matches(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Classify reports INCOMING when only the credit side is owned, OUTGOING when only
// the debit side is owned and NEUTRAL otherwise.
func Classify(t Transaction, owned map[string]struct{}) Direction {
	debitOwned := t.DebitAccountID != nil && contains(owned, *t.DebitAccountID)
	creditOwned := t.CreditAccountID != nil && contains(owned, *t.CreditAccountID)
	switch {
	case creditOwned && !debitOwned:
		return Incoming
	case debitOwned && !creditOwned:
		return Outgoing
	default:
		return Neutral
	}
}

// OwnedSet builds the lookup set used by Classify.
func OwnedSet(accountIDs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		set[id] = struct{}{}
	}
	return set
}

func contains(set map[string]struct{}, id string) bool {
	_, ok := set[id]
	return ok
}
