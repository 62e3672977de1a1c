package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of a resource,
// e.g. opening a cash session while another one is still open.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates that the operation is not permitted on the target resource,
// e.g. deleting a ledger entry that was created by an order workflow.
var ErrForbidden = errors.New("operation forbidden")

// ErrInsufficientFunds indicates that a transfer would drive the source account balance negative.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrAccountHasBalance indicates a deactivation attempt on an account whose balance is not zero.
var ErrAccountHasBalance = errors.New("account balance is not zero")

// ErrProtectedAccount indicates an attempt to deactivate one of the reserved accounts.
var ErrProtectedAccount = errors.New("account is protected")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a message and the wrapped cause.
// Repositories use it to report infrastructure failures without leaking driver details.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that also matches ErrNotFound in errors.Is checks.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
