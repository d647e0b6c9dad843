// Package apperrors defines the error kinds services report to the HTTP layer.
//
// Handlers branch on the kind with errors.Is; the message is safe to show to clients.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for missing entities and for entities outside the caller's access scope
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned for malformed or inconsistent input
	ErrValidation = errors.New("validation failed")
	// ErrPermissionDenied is returned when the caller lacks a capability on an entity they can see
	ErrPermissionDenied = errors.New("permission denied")
	// ErrConflict is returned when a request clashes with existing state
	ErrConflict = errors.New("conflict")
	// ErrCycleDetected is returned when the category parent chain loops back on itself
	ErrCycleDetected = errors.New("category cycle detected")
	// ErrUnauthenticated is returned for bad credentials or tokens
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Error is a client-facing message tagged with one of the kinds above
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NotFound reports a missing entity, e.g. NotFound("course") -> "course not found"
func NotFound(entity string) error {
	return &Error{Kind: ErrNotFound, Message: entity + " not found"}
}

// Validation reports invalid input
func Validation(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// PermissionDenied reports a missing capability
func PermissionDenied(format string, args ...any) error {
	return &Error{Kind: ErrPermissionDenied, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a clash with existing state
func Conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// Unauthenticated reports rejected credentials
func Unauthenticated(message string) error {
	return &Error{Kind: ErrUnauthenticated, Message: message}
}
