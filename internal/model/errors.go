package model

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a uniqueness constraint would be violated.
	ErrConflict = errors.New("conflict")
	// ErrInvalidCredentials hides whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for missing, malformed, forged or expired tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUpstream is returned when the event catalog cannot be reached.
	ErrUpstream = errors.New("event catalog unavailable")
)

// ValidationError describes rejected client input.
type ValidationError struct {
	Message string
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError is a client-facing ErrConflict with a specific message.
type ConflictError struct {
	Message string
}

// NewConflictError creates a ConflictError with the given message.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Is reports ConflictError as ErrConflict.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
