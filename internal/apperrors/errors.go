package apperrors

import (
	"errors"
	"fmt"
)

// Business-rule violations. The ledger engine converts these into FAILED
// transaction records; they never reach a caller as a returned error.
var (
	// ErrNotFound indicates that a requested resource could not be found.
	ErrNotFound = errors.New("resource not found")

	// ErrUserInactive indicates the owning user of an account is not ACTIVE.
	ErrUserInactive = errors.New("user is inactive")

	// ErrAccountFrozen indicates a referenced account has status FROZEN.
	ErrAccountFrozen = errors.New("account is frozen")

	// ErrInvalidAmount indicates a zero or negative transaction amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds indicates a debit would leave the balance below
	// the account type's minimum.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrValidation indicates that input data failed validation checks.
	ErrValidation = errors.New("validation error")

	// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
	ErrDuplicate = errors.New("resource already exists")
)

// IsBusinessError reports whether err is one of the business-rule sentinels
// that the ledger engine records as a FAILED transaction instead of returning.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserInactive) ||
		errors.Is(err, ErrAccountFrozen) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInsufficientFunds)
}

// AppError carries an infrastructure fault (store unavailable, failed commit)
// across the service boundary. Business-rule sentinels are never wrapped in it.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError creates an AppError wrapping an underlying infrastructure fault.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
