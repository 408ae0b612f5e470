// Package apperror defines the error taxonomy shared by every layer.
//
// Repositories and services return *AppError values wrapping one of the
// sentinel errors below. Only the HTTP layer decides which status code a
// sentinel maps to (see handler/response.go).
package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrAccessDenied = errors.New("access denied")
	ErrIntegration  = errors.New("identity provider integration failed")

	ErrMethodNotAllowed = errors.New("method not allowed")
)

type AppError struct {
	Err     error  // sentinel
	Message string // Human-readable error message
	Field   string // Optional: single field causing the error

	// Fields maps request field names to validation messages.
	Fields map[string]string

	// Status and Body carry the upstream HTTP response for integration
	// failures. Status is 0 when the call never produced a response.
	Status int
	Body   string

	cause error
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is/As.
func (e *AppError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.cause}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id: %s", resource, id),
	}
}

// NotFoundBy is NotFound for lookups on an attribute other than the id.
func NotFoundBy(resource, attr, value string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with %s: %s", resource, attr, value),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
		Fields:  map[string]string{field: message},
	}
}

// InvalidFields reports several field errors at once. The message lists the
// fields in a stable order so log lines are comparable.
func InvalidFields(fields map[string]string) *AppError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	return &AppError{
		Err:     ErrValidation,
		Message: "validation failed: " + strings.Join(names, ", "),
		Fields:  fields,
	}
}

func Conflict(resource, key string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s already exists: %s", resource, key),
	}
}

// NoRoute reports a request path that matches no route.
func NoRoute(method, path string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("No handler found for %s %s", method, path),
	}
}

// MethodNotAllowed reports a known path requested with an unsupported method.
func MethodNotAllowed(method, path string) *AppError {
	return &AppError{
		Err:     ErrMethodNotAllowed,
		Message: fmt.Sprintf("Request method '%s' is not supported for %s", method, path),
	}
}

// AccessDenied returns an AppError indicating the caller lacks a required
// authority. HTTP handlers map this to 403 Forbidden.
func AccessDenied(message string) *AppError {
	return &AppError{
		Err:     ErrAccessDenied,
		Message: message,
	}
}

// Integration reports a failed call to the identity provider. status and
// body describe the upstream response; cause may be nil.
func Integration(message string, status int, body string, cause error) *AppError {
	return &AppError{
		Err:     ErrIntegration,
		Message: message,
		Status:  status,
		Body:    body,
		cause:   cause,
	}
}
