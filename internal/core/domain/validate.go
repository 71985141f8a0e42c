package domain

import (
	"errors"
	"fmt"
	"sync"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var (
	validateOnce    sync.Once
	recordValidator *validator.Validate
)

func recordValidatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		recordValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return recordValidator
}

// validateRecord runs the struct tags of a ledger record and reports the first
// failing field as a validation error.
func validateRecord(kind string, record any) error {
	if err := recordValidatorInstance().Struct(record); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: invalid %s: field %s failed %q", apperrors.ErrValidation, kind, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: invalid %s: %v", apperrors.ErrValidation, kind, err)
	}
	return nil
}

// ValidateAccount checks an account record at the store boundary.
func ValidateAccount(a Account) error {
	return validateRecord("account", a)
}

// ValidateBalance checks a balance record at the store boundary.
func ValidateBalance(b Balance) error {
	return validateRecord("balance", b)
}

// ValidateTransaction checks a transaction record at the store boundary.
func ValidateTransaction(t Transaction) error {
	if err := validateRecord("transaction", t); err != nil {
		return err
	}
	if t.DebitAccountID == nil && t.CreditAccountID == nil {
		return fmt.Errorf("%w: invalid transaction: debit or credit account required", apperrors.ErrValidation)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: invalid transaction: amount must be positive", apperrors.ErrValidation)
	}
	return nil
}

// ValidateCustomer checks a customer record at the store boundary.
func ValidateCustomer(c Customer) error {
	return validateRecord("customer", c)
}
