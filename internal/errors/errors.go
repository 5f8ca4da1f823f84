// Package errors provides standardized domain errors with codes for the Inkwell reading engine.
//
// Usage:
//
//	// In services - return typed errors
//	if strings.TrimSpace(title) == "" {
//	    return errors.Validation("bookmark title is required")
//	}
//
//	// In callers - check with errors.Is
//	if errors.Is(err, errors.ErrPersistence) {
//	    log.Warn("change kept in memory only", "error", err)
//	}
//
//	// Or use the Code directly for switch statements
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    switch domainErr.Code {
//	    case errors.CodeValidation:
//	        showFieldErrors(domainErr.Details)
//	    case errors.CodeIngest:
//	        showImportFailed(domainErr.Message)
//	    }
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the engine.
const (
	CodeValidation   Code = "VALIDATION"
	CodeIngest       Code = "INGEST"
	CodeNotFound     Code = "NOT_FOUND"
	CodePersistence  Code = "PERSISTENCE"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeBusy         Code = "BUSY"
	CodeInternal     Code = "INTERNAL"
)

// Fatal reports whether errors with this code mean the operation did not take effect.
// Persistence errors are degraded-durability warnings: the in-memory change already happened.
func (c Code) Fatal() bool {
	return c != CodePersistence
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrValidation   = &Error{Code: CodeValidation, Message: "validation error"}
	ErrIngest       = &Error{Code: CodeIngest, Message: "ingest failed"}
	ErrNotFound     = &Error{Code: CodeNotFound, Message: "not found"}
	ErrPersistence  = &Error{Code: CodePersistence, Message: "persistence failed"}
	ErrUnauthorized = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrBusy         = &Error{Code: CodeBusy, Message: "busy"}
	ErrInternal     = &Error{Code: CodeInternal, Message: "internal error"}
)

// IsWarning reports whether err is a non-fatal, degraded-durability error.
// Callers can surface it to the user and keep going.
func IsWarning(err error) bool {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return !domainErr.Code.Fatal()
	}
	return false
}

// Constructor functions for creating errors with custom messages.

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Ingest creates an ingest error wrapping the provider failure.
func Ingest(ref string, cause error) *Error {
	return &Error{Code: CodeIngest, Message: fmt.Sprintf("ingest %q", ref), cause: cause}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Persistence wraps a storage failure as a degraded-durability warning.
func Persistence(key string, cause error) *Error {
	return &Error{Code: CodePersistence, Message: fmt.Sprintf("persist %q", key), cause: cause}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

// Busy creates an error for an operation rejected because another one is in flight.
func Busy(msg string) *Error {
	return &Error{Code: CodeBusy, Message: msg}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
