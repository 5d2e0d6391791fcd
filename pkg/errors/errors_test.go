package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidFilters, "days must be positive, got %d", -3)

	if err.Code != ErrCodeInvalidFilters {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFilters)
	}

	if err.Message != "days must be positive, got -3" {
		t.Errorf("Message = %v", err.Message)
	}

	expected := "INVALID_FILTERS: days must be positive, got -3"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeNetwork, cause, "search page %d", 2)

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	if !strings.Contains(err.Error(), "underlying error") {
		t.Errorf("Error() should include the cause: %v", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidPage, "test"),
			code:     ErrCodeInvalidPage,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidPage, "test"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeNetwork, New(ErrCodeMalformedRecord, "inner"), "outer"),
			code:     ErrCodeNetwork,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidPage,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidPage,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeRateLimited, "test")); got != ErrCodeRateLimited {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeRateLimited)
	}

	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}

	// Code survives wrapping in a plain error
	wrapped := fmt.Errorf("context: %w", New(ErrCodeFetch, "inner"))
	if got := GetCode(wrapped); got != ErrCodeFetch {
		t.Errorf("GetCode() through fmt wrap = %v, want %v", got, ErrCodeFetch)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "labels must not be empty")
	if got := UserMessage(err); got != "labels must not be empty" {
		t.Errorf("UserMessage() = %v", got)
	}

	plain := errors.New("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage() = %v", got)
	}
}

func TestFetchError(t *testing.T) {
	err := &FetchError{Status: 422, Body: `{"message": "Validation Failed"}`}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("Error() should include status: %v", err.Error())
	}
	if !strings.Contains(err.Error(), "Validation Failed") {
		t.Errorf("Error() should include body: %v", err.Error())
	}

	bare := &FetchError{Status: 500}
	if bare.Error() != "provider returned status 500" {
		t.Errorf("Error() = %v", bare.Error())
	}
}

func TestRateLimitedError(t *testing.T) {
	reset := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	err := &RateLimitedError{ResetAt: reset}
	if !strings.Contains(err.Error(), "2025-06-15T12:00:00Z") {
		t.Errorf("Error() should include reset time: %v", err.Error())
	}

	unknown := &RateLimitedError{}
	if unknown.Error() != "rate limited" {
		t.Errorf("Error() = %v", unknown.Error())
	}

	if !IsRateLimited(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsRateLimited should see through wrapping")
	}
	if IsRateLimited(errors.New("plain")) {
		t.Error("IsRateLimited should reject plain errors")
	}
	if IsRateLimited(nil) {
		t.Error("IsRateLimited(nil) should be false")
	}
}
