package services

import (
	"fmt"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
)

// Ledger rule violations. Each wraps its apperrors category so callers can match either.
var (
	ErrSameAccount          = fmt.Errorf("%w: source and destination accounts are the same", apperrors.ErrValidation)
	ErrMissingRecipientInfo = fmt.Errorf("%w: external transfers need an account number and a recipient name", apperrors.ErrValidation)
	ErrNonPositiveAmount    = fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	ErrNonZeroBalance       = fmt.Errorf("%w: account balance is not zero", apperrors.ErrBusinessRule)
	ErrInvalidState         = fmt.Errorf("%w: account is not in a valid state for this operation", apperrors.ErrBusinessRule)
	ErrAccountInactive      = fmt.Errorf("%w: account is not active", apperrors.ErrBusinessRule)
	ErrInvalidCredentials   = fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
)
