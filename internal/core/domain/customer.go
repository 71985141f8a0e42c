package domain

import "time"

// Customer owns accounts. PasswordHash holds a bcrypt hash and is never serialised.
type Customer struct {
	CustomerID   string    `json:"customerID" validate:"required"`
	FullName     string    `json:"fullName" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	DateOfBirth  time.Time `json:"dateOfBirth"`
	PasswordHash string    `json:"-"`
	AuditFields
}
