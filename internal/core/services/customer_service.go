package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/retail_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/retail_ledger/internal/core/ports/services"
	"github.com/SscSPs/retail_ledger/internal/dto"
	"github.com/SscSPs/retail_ledger/internal/utils"
	"github.com/google/uuid"
)

// CustomerService registers and authenticates customers.
type CustomerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*CustomerService)(nil)

func (s *CustomerService) Register(ctx context.Context, req dto.RegisterCustomerRequest) (*domain.Customer, error) {
	dob, err := time.Parse(time.DateOnly, req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: date of birth must be YYYY-MM-DD", apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	customer := domain.Customer{
		CustomerID:   uuid.NewString(),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		DateOfBirth:  dob,
		PasswordHash: hash,
		AuditFields:  domain.NewAuditFields(s.Now()),
	}
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save customer")
		}
		return nil, fmt.Errorf("failed to register customer: %w", err)
	}

	s.LogInfo(ctx, "Customer registered", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}
	return customer, nil
}

// Authenticate reports unknown emails and wrong passwords the same way.
func (s *CustomerService) Authenticate(ctx context.Context, email string, password string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to look up customer for login")
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	if !utils.CheckPasswordHash(password, customer.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch", slog.String("customer_id", customer.CustomerID))
		return nil, ErrInvalidCredentials
	}
	return customer, nil
}

// TokenService issues signed JWTs for customers.
type TokenService struct {
	secret string
	expiry time.Duration
	issuer string
}

// NewTokenService creates a new token service
func NewTokenService(secret string, expiry time.Duration, issuer string) *TokenService {
	return &TokenService{secret: secret, expiry: expiry, issuer: issuer}
}

var _ portssvc.TokenSvc = (*TokenService)(nil)

func (s *TokenService) GenerateToken(customerID string) (string, error) {
	token, err := utils.GenerateJWT(customerID, s.secret, s.expiry, s.issuer)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
