package domain

// AccountType is the product type of a customer account.
type AccountType string

const (
	Checking AccountType = "CHECKING"
	Savings  AccountType = "SAVINGS"
	Credit   AccountType = "CREDIT"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case Checking, Savings, Credit:
		return true
	}
	return false
}

// AllowsNegativeBalance reports whether debits may take a balance of this account type below zero.
func (t AccountType) AllowsNegativeBalance() bool {
	return t == Credit
}

// AccountStatus is the lifecycle state of an account. Closing is a soft delete.
type AccountStatus string

const (
	AccountActive AccountStatus = "ACTIVE"
	AccountClosed AccountStatus = "CLOSED"
)

// Valid reports whether s is a known account status.
func (s AccountStatus) Valid() bool {
	return s == AccountActive || s == AccountClosed
}

// Account represents a customer account within the core domain.
type Account struct {
	AccountID     string        `json:"accountID" validate:"required"`
	AccountNumber string        `json:"accountNumber" validate:"required"` // immutable once assigned
	AccountType   AccountType   `json:"accountType" validate:"required,oneof=CHECKING SAVINGS CREDIT"`
	OwnerID       string        `json:"ownerID" validate:"required"`
	Status        AccountStatus `json:"status" validate:"required,oneof=ACTIVE CLOSED"`
	AuditFields
}

// IsActive reports whether the account accepts money movements.
func (a Account) IsActive() bool {
	return a.Status == AccountActive
}

// PartitionAccounts splits accounts into active and closed sets, preserving order.
func PartitionAccounts(accounts []Account) (active []Account, closed []Account) {
	active = make([]Account, 0, len(accounts))
	closed = make([]Account, 0)
	for _, a := range accounts {
		if a.Status == AccountClosed {
			closed = append(closed, a)
			continue
		}
		active = append(active, a)
	}
	return active, closed
}

// AccountIDs returns the identifiers of accounts in order.
func AccountIDs(accounts []Account) []string {
	ids := make([]string, len(accounts))
	for i, a := range accounts {
		ids[i] = a.AccountID
	}
	return ids
}
