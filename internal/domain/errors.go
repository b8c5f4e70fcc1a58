// Package domain holds the quote model and the errors the rest of the
// service speaks in. Errors name business failures only; adapters decide
// which HTTP status or CLI message each one becomes.
package domain

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is. Every typed error below unwraps to one.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrValidation  = errors.New("validation failed")
	ErrForbidden   = errors.New("forbidden")
	ErrUnavailable = errors.New("unavailable")

	// ErrParse marks input that is not JSON at all.
	ErrParse = errors.New("parse failed")

	// ErrFormat marks JSON of the wrong shape, such as an object where an
	// array of quotes was expected.
	ErrFormat = errors.New("invalid format")
)

// NotFoundError reports a missing stored value or remote resource.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}

	return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError returns a *NotFoundError.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError reports a state clash reported by a downstream service.
type ConflictError struct {
	Entity string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NewConflictError returns a *ConflictError.
func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// ValidationError reports input that breaks a rule, such as a quote with
// blank text. Field is empty when the rule spans the whole input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}

	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError returns a *ValidationError.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ForbiddenError reports an operation the caller may not perform.
type ForbiddenError struct {
	Operation string
	Reason    string
}

func (e *ForbiddenError) Error() string {
	msg := fmt.Sprintf("operation %q forbidden", e.Operation)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

// NewForbiddenError returns a *ForbiddenError.
func NewForbiddenError(operation, reason string) error {
	return &ForbiddenError{Operation: operation, Reason: reason}
}

// UnavailableError reports a dependency that could not be reached or
// answered with a server error: the remote feed or the durable store.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("service %q unavailable", e.Service)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

// NewUnavailableError returns an *UnavailableError.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// ParseError reports bytes from Source that are not valid JSON.
type ParseError struct {
	Source string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause == nil {
		return "parsing " + e.Source + " failed"
	}

	return fmt.Sprintf("parsing %s: %v", e.Source, e.Cause)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// NewParseError returns a *ParseError.
func NewParseError(source string, cause error) error {
	return &ParseError{Source: source, Cause: cause}
}

// FormatError reports valid JSON from Source that is not what was Expected.
type FormatError struct {
	Source   string
	Expected string
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("invalid %s format", e.Source)
	if e.Expected != "" {
		msg += ": expected " + e.Expected
	}

	return msg
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// NewFormatError returns a *FormatError.
func NewFormatError(source, expected string) error {
	return &FormatError{Source: source, Expected: expected}
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err wraps ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsValidation reports whether err wraps ErrValidation.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsForbidden reports whether err wraps ErrForbidden.
func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }

// IsUnavailable reports whether err wraps ErrUnavailable.
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }

// IsParse reports whether err wraps ErrParse.
func IsParse(err error) bool { return errors.Is(err, ErrParse) }

// IsFormat reports whether err wraps ErrFormat.
func IsFormat(err error) bool { return errors.Is(err, ErrFormat) }
