// Package apperr centralizes the service error taxonomy so handlers can map
// any error from the service layer onto an HTTP status without string
// matching. Services wrap these with context; callers test with errors.Is /
// errors.As.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors, used with errors.Is.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is the root of all input validation failures.
	ErrValidation = errors.New("validation failed")

	// ErrStateConflict is returned when an operation is not permitted in the
	// entity's current lifecycle state, or would violate a uniqueness rule.
	ErrStateConflict = errors.New("state conflict")

	// ErrExternalDependency is returned when a collaborator call fails. The
	// local write, if any, has already been persisted.
	ErrExternalDependency = errors.New("external dependency failure")
)

// ValidationError reports a single rejected field with the reason, detailed
// enough for the caller to render a user-facing message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validation builds a ValidationError.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Validationf builds a ValidationError with a formatted reason.
func Validationf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// StateConflictError reports an operation rejected by lifecycle state.
type StateConflictError struct {
	Entity    string
	Current   string
	Operation string
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("%s is %s, %s is not permitted", e.Entity, e.Current, e.Operation)
}

func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}

// StateConflict builds a StateConflictError.
func StateConflict(entity, current, operation string) error {
	return &StateConflictError{Entity: entity, Current: current, Operation: operation}
}

// NotFound wraps ErrNotFound with the entity name.
func NotFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

// External wraps a collaborator failure.
func External(collaborator string, err error) error {
	return fmt.Errorf("%s: %v: %w", collaborator, err, ErrExternalDependency)
}

// HTTPStatus maps an error onto the status code handlers should respond
// with. Unrecognized errors are internal server errors.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrStateConflict):
		return http.StatusConflict
	case errors.Is(err, ErrExternalDependency):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
