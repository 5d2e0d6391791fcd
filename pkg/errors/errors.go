// Package errors provides structured error types for the firstissue application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, TUI, and the local API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NETWORK_*: Transport-level failures
//   - FETCH_*: Non-2xx provider responses
//   - RATE_LIMITED: 403/429 responses from the search provider
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFilters, "days must be positive, got %d", days)
//	if errors.Is(err, errors.ErrCodeInvalidFilters) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "search page %d", page)
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidFilters Code = "INVALID_FILTERS"
	ErrCodeInvalidPage    Code = "INVALID_PAGE"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Provider errors
	ErrCodeFetch         Code = "FETCH_ERROR"
	ErrCodeRateLimited   Code = "RATE_LIMITED"
	ErrCodeResultCeiling Code = "RESULT_CEILING"

	// Per-record errors
	ErrCodeMalformedRecord Code = "MALFORMED_RECORD"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Authentication errors
	ErrCodeUnauthorized Code = "UNAUTHORIZED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// FetchError carries the HTTP status and response body of a failed
// provider request. It covers non-2xx responses that are not rate limits.
type FetchError struct {
	Status int    // HTTP status code
	Body   string // Response body, possibly truncated
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("provider returned status %d", e.Status)
}

// RateLimitedError is returned for 403/429 responses from the provider.
// It carries the reset time parsed from the X-RateLimit-Reset header so
// callers can tell the user when to retry or prompt for a token.
type RateLimitedError struct {
	ResetAt   time.Time // When the rate limit window resets (zero if unknown)
	Remaining int       // Requests left in the window, normally 0
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if !e.ResetAt.IsZero() {
		return fmt.Sprintf("rate limited: resets at %s", e.ResetAt.Format(time.RFC3339))
	}
	return "rate limited"
}

// IsRateLimited reports whether err is a rate-limit error from the provider.
func IsRateLimited(err error) bool {
	var rl *RateLimitedError
	return errors.As(err, &rl)
}
