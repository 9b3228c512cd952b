package models

import "fmt"

// InputError rejects a request because of a specific field. It is always
// recoverable by the caller correcting their input.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// NewInputError creates an InputError for a field.
func NewInputError(field, reason string) *InputError {
	return &InputError{Field: field, Reason: reason}
}

// NewInputErrorf creates an InputError with formatting.
func NewInputErrorf(field, format string, a ...interface{}) *InputError {
	return &InputError{Field: field, Reason: fmt.Sprintf(format, a...)}
}

// CollaboratorError marks an external backend (ephemeris, geocoder) as
// unavailable. Callers should retry rather than change their input.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// NewCollaboratorError wraps an underlying failure of a named collaborator.
func NewCollaboratorError(collaborator string, err error) *CollaboratorError {
	return &CollaboratorError{Collaborator: collaborator, Err: err}
}

// InvariantError is an internal computation fault (e.g. a house result of
// unexpected cardinality). It is never masked or downgraded to a default.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("computation invariant violated: %s", e.Detail)
}

// NewInvariantErrorf creates an InvariantError with formatting.
func NewInvariantErrorf(format string, a ...interface{}) *InvariantError {
	return &InvariantError{Detail: fmt.Sprintf(format, a...)}
}
