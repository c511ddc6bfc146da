// Package errkind groups domain sentinel errors into the broad failure
// kinds callers branch on.
package errkind

import "errors"

var (
	ErrNotFound            = errors.New("not_found")
	ErrEmptyInvoice        = errors.New("empty_invoice")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidArgument     = errors.New("invalid_argument")
	ErrConflict            = errors.New("conflict")
	ErrConstraintViolation = errors.New("constraint_violation")
	ErrInsufficientStock   = errors.New("insufficient_stock")
)

// Error is a domain sentinel tagged with its kind.
type Error struct {
	code string
	kind error
}

// New declares a sentinel that matches both itself and kind under errors.Is.
func New(code string, kind error) *Error {
	return &Error{code: code, kind: kind}
}

func (e *Error) Error() string { return e.code }

// Code returns the snake_case identifier of the error.
func (e *Error) Code() string { return e.code }

func (e *Error) Unwrap() error { return e.kind }

// IsRetryable reports whether err is a conflict the caller may retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}
