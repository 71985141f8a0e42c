package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrBusinessRule indicates that a request was well formed but the current ledger state forbids it.
var ErrBusinessRule = errors.New("business rule violation")

// ErrInsufficientFunds indicates a debit against a missing or too small balance.
var ErrInsufficientFunds = errors.New("insufficient funds or missing balance")

// ErrPartialFailure indicates a multi-step ledger operation stopped after mutating the store.
var ErrPartialFailure = errors.New("partial failure")

// ErrTransport indicates that the ledger store was unreachable or answered unexpectedly.
var ErrTransport = errors.New("ledger store transport error")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// AppError carries an HTTP-ish status code alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// TransportError is returned by ledger store adapters when the backing store
// fails for reasons other than not-found or duplicate.
type TransportError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

// NewTransportError wraps err as a TransportError for the given operation.
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

func (e *TransportError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", ErrTransport, e.Op, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: %s: %s", ErrTransport, e.Op, msg)
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// PartialFailureError reports a transfer that recorded its transaction but did not
// finish applying balances. The ledger needs manual reconciliation.
type PartialFailureError struct {
	TransactionID   string
	ReferenceNumber string
	Stage           string
	DebitApplied    bool
	CreditApplied   bool
	MarkedFailed    bool
	Err             error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: transaction %s stopped at %s (debit applied: %t, credit applied: %t): %v",
		ErrPartialFailure, e.ReferenceNumber, e.Stage, e.DebitApplied, e.CreditApplied, e.Err)
}

func (e *PartialFailureError) Unwrap() []error {
	return []error{ErrPartialFailure, e.Err}
}

// HTTPStatus maps an error from the service layer to a response status code.
func HTTPStatus(err error) int {
	var appErr *AppError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrPartialFailure):
		return http.StatusInternalServerError
	case errors.Is(err, ErrTransport):
		// a store answer that failed validation is still the store's fault
		return http.StatusBadGateway
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrBusinessRule):
		return http.StatusConflict
	case errors.Is(err, ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.As(err, &appErr) && appErr.Code != 0:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}
