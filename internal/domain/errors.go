package domain

import (
	"errors"
	"fmt"
)

// Error categories shared by all services. The API layer translates them
// into HTTP statuses via errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// ValidationError reports the first violated field of a request payload
// or business rule. Field order of checks is stable so responses are
// reproducible.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type categorized struct {
	msg  string
	kind error
}

func (e *categorized) Error() string { return e.msg }
func (e *categorized) Unwrap() error { return e.kind }

// NotFound returns a "<resource> not found" error matching ErrNotFound.
func NotFound(resource string) error {
	return &categorized{msg: fmt.Sprintf("%s not found", resource), kind: ErrNotFound}
}

// Unauthorized returns an ownership/role failure matching ErrUnauthorized.
func Unauthorized(msg string) error {
	return &categorized{msg: msg, kind: ErrUnauthorized}
}

// Conflict returns a state-transition failure matching ErrConflict.
func Conflict(msg string) error {
	return &categorized{msg: msg, kind: ErrConflict}
}
