// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorKind classifies failures surfaced by the core
type ErrorKind string

const (
	KindUnauthorized   ErrorKind = "unauthorized"
	KindBadCredentials ErrorKind = "bad_credentials"
	KindNotFound       ErrorKind = "not_found"
	KindValidation     ErrorKind = "validation_failed"
	KindStorage        ErrorKind = "storage_error"
	KindInvariant      ErrorKind = "invariant_violation"
)

// Error is the tagged error returned by services
type Error struct {
	Kind    ErrorKind
	Message string
	// Field is set for single-field validation failures
	Field string
	// Fields holds per-field messages for multi-field validation failures
	Fields map[string]string
	Err    error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+e.Fields[k])
		}
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(parts, "; "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrUnauthorized()) works
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// ErrUnauthorized is returned when an anonymous identity calls a mutating operation
func ErrUnauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Message: "User is unauthorized"}
}

// ErrBadUserPassword is returned by login for an unknown user or a wrong password
func ErrBadUserPassword() *Error {
	return &Error{Kind: KindBadCredentials, Message: "Username does not exist or password doesn't match"}
}

// NotFound builds a not-found error for an entity id
func NotFound(entity string, id any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %v not found", entity, id)}
}

// Validation builds a general validation failure
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// FieldValidation builds a validation failure bound to one field
func FieldValidation(field, msg string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf("Validation failed for field %s", field),
		Field:   field,
		Fields:  map[string]string{field: msg},
	}
}

// MultiValidation builds a validation failure carrying several field messages
func MultiValidation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "Multiple errors", Fields: fields}
}

// ValidationFromFields returns nil, a single-field or a multi-field failure
func ValidationFromFields(fields map[string]string) error {
	switch len(fields) {
	case 0:
		return nil
	case 1:
		for field, msg := range fields {
			return FieldValidation(field, msg)
		}
	}
	return MultiValidation(fields)
}

// Storage wraps a store failure for an operation
func Storage(op string, err error) *Error {
	return &Error{Kind: KindStorage, Message: op, Err: err}
}

// InvariantViolation flags data that contradicts a read made moments earlier
func InvariantViolation(msg string) *Error {
	return &Error{Kind: KindInvariant, Message: msg}
}

// KindOf returns the kind of a domain error, or "" for foreign errors
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
