package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the request conflicts with the current state of a resource,
// such as a duplicate posting or an illegal status change.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected failure in a dependency.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
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

// ValidationError reports a malformed journal line or request field.
// LineIndex is -1 when the problem is not tied to a line.
type ValidationError struct {
	LineIndex int
	Field     string
	Amount    *decimal.Decimal
	Reason    string
	Err       error
}

// NewValidationError creates a ValidationError that is not tied to a specific line.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{LineIndex: -1, Field: field, Reason: reason}
}

// NewLineValidationError creates a ValidationError for the line at index.
func NewLineValidationError(index int, field, reason string) *ValidationError {
	return &ValidationError{LineIndex: index, Field: field, Reason: reason}
}

// WithAmount attaches the offending amount.
func (e *ValidationError) WithAmount(amount decimal.Decimal) *ValidationError {
	e.Amount = &amount
	return e
}

// WithCause attaches an underlying error.
func (e *ValidationError) WithCause(err error) *ValidationError {
	e.Err = err
	return e
}

func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.LineIndex >= 0 {
		msg = fmt.Sprintf("%s: line %d", msg, e.LineIndex)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Field)
	}
	msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	if e.Amount != nil {
		msg = fmt.Sprintf("%s (amount %s)", msg, e.Amount.String())
	}
	return msg
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// UnbalancedEntryError reports a journal entry whose debits and credits differ.
type UnbalancedEntryError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("unbalanced entry: total debit %s does not equal total credit %s (difference %s)",
		e.TotalDebit.String(), e.TotalCredit.String(), e.TotalDebit.Sub(e.TotalCredit).String())
}

func (e *UnbalancedEntryError) Is(target error) bool {
	return target == ErrValidation
}

// UnknownAccountError reports an account code missing from the chart of accounts.
type UnknownAccountError struct {
	Code string
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("unknown account code %q", e.Code)
}

func (e *UnknownAccountError) Is(target error) bool {
	return target == ErrNotFound
}
