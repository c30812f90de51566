package utils

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrDatabaseError   = errors.New("database error")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ValidationError carries field-scoped messages, rendered as a 422 with a
// {field: [messages]} map. Invariant violations (last-admin, self-action)
// are reported through this type on a semantic field so callers can render
// them inline.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, messages := range e.Fields {
		parts = append(parts, field+": "+strings.Join(messages, "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// ForbiddenError is a role/ownership/hierarchy rule violation, rendered as 403.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

func NewForbiddenError(message string) *ForbiddenError {
	if message == "" {
		message = "Forbidden"
	}
	return &ForbiddenError{Message: message}
}

// SuspendedError signals the 423 lock for a currently suspended account.
type SuspendedError struct {
	Message        string
	SuspendedUntil *time.Time
}

func (e *SuspendedError) Error() string { return e.Message }

func NewSuspendedError(until *time.Time) *SuspendedError {
	if until != nil {
		return &SuspendedError{
			Message:        "Your account is suspended until " + until.Format(time.RFC1123) + ".",
			SuspendedUntil: until,
		}
	}
	return &SuspendedError{Message: "Your account is suspended. Contact an administrator."}
}
