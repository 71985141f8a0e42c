package dto

import (
	"time"

	"github.com/SscSPs/retail_ledger/internal/core/domain"
)

// RegisterCustomerRequest defines the data needed to register a customer.
type RegisterCustomerRequest struct {
	FullName    string `json:"fullName" binding:"required,max=120"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DateOfBirth string `json:"dateOfBirth" binding:"required,datetime=2006-01-02" example:"1990-04-21"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID  string    `json:"customerID"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	DateOfBirth string    `json:"dateOfBirth"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:  c.CustomerID,
		FullName:    c.FullName,
		Email:       c.Email,
		DateOfBirth: c.DateOfBirth.Format(time.DateOnly),
		CreatedAt:   c.CreatedAt,
	}
}

// LoginRequest holds email/password credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token      string `json:"token"`
	CustomerID string `json:"customerID"`
}
