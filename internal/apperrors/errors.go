// Package apperrors holds the typed errors shared by the booking workflow,
// the validators and the HTTP layer. Handlers map these onto status codes
// instead of matching error strings.
package apperrors

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeInvalidFormat   Code = "invalid_format"
	CodeChecksumFailed  Code = "checksum_failed"
	CodeExpired         Code = "expired"
	CodeAgeTypeMismatch Code = "age_type_mismatch"
	CodeEmptyField      Code = "empty_field"
)

// ValidationError is a recoverable per-field error: the user stays on the
// current wizard step and corrects the input.
type ValidationError struct {
	Field   string
	Code    Code
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidation(field string, code Code, message string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Message: message}
}

// StepOrderError rejects a wizard step entered before its predecessor's data
// is present and valid. No transition may skip a required state.
type StepOrderError struct {
	Current  string
	Required string
}

func (e *StepOrderError) Error() string {
	return fmt.Sprintf("step not allowed yet: requires %s, session is at %s", e.Required, e.Current)
}

// NotificationError wraps a confirmation-delivery failure. The booking is
// already persisted by the time this can occur, so it is a warning, never a
// rollback.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("confirmation notification failed: %v", e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

var (
	// ErrNoFlightsFound means an exact-match search produced no results.
	ErrNoFlightsFound = errors.New("no flights found for the given origin and destination")

	// ErrStoreCorrupt means the persisted booking index exists but cannot be
	// parsed. The store must not be reinitialized over it.
	ErrStoreCorrupt = errors.New("booking store is corrupt")

	// ErrNoActiveSession means the user has no booking draft in progress.
	ErrNoActiveSession = errors.New("no booking in progress")
)
