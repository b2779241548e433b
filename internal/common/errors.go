// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports a malformed or incomplete payload. It is raised
// before any state change, so a rejected operation leaves no partial state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a validation rejection for a single field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// InsufficientFundsError rejects an expense or transfer that exceeds the
// account's available balance.
type InsufficientFundsError struct {
	AccountName string
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in %s: available %s, requested %s (short %s)",
		e.AccountName,
		e.Available.StringFixed(2),
		e.Requested.StringFixed(2),
		e.Requested.Sub(e.Available).StringFixed(2))
}

// InsufficientCreditError rejects a credit charge that exceeds the card's
// remaining credit (limit minus active debt).
type InsufficientCreditError struct {
	AccountName string
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *InsufficientCreditError) Error() string {
	return fmt.Sprintf("insufficient credit on %s: available %s, requested %s (short %s)",
		e.AccountName,
		e.Available.StringFixed(2),
		e.Requested.StringFixed(2),
		e.Requested.Sub(e.Available).StringFixed(2))
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRejection reports whether err is a pre-commit rejection (validation or
// funds/credit check) rather than a storage failure. Rejections are recovered
// at the presentation boundary and never fatal.
func IsRejection(err error) bool {
	var ve *ValidationError
	var fe *InsufficientFundsError
	var ce *InsufficientCreditError
	return errors.As(err, &ve) || errors.As(err, &fe) || errors.As(err, &ce) || errors.Is(err, ErrNotFound)
}
