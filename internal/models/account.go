package models

// Account is the stored form of a customer account.
type Account struct {
	AccountID     string `json:"id" db:"account_id"`
	AccountNumber string `json:"accountNumber" db:"account_number"`
	AccountType   string `json:"type" db:"account_type"`
	OwnerID       string `json:"ownerId" db:"owner_id"`
	Status        string `json:"status" db:"status"`
	AuditFields
}
