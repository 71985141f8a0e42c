package models

import "time"

// Customer is the stored form of a customer. Unlike the domain type,
// the password hash is serialised so that remote stores can persist it.
type Customer struct {
	CustomerID   string    `json:"id" db:"customer_id"`
	FullName     string    `json:"fullName" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	DateOfBirth  time.Time `json:"dateOfBirth" db:"date_of_birth"`
	PasswordHash string    `json:"passwordHash" db:"password_hash"`
	AuditFields
}
