package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "error without cause",
			err:      &Error{Code: ErrCodeRecordNotFound, Message: "no route named 'x'"},
			expected: "[RECORD_NOT_FOUND] no route named 'x'",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeIO, "failed to rewrite routes", errors.New("permission denied")),
			expected: "[IO_ERROR] failed to rewrite routes: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "wrapper", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Expected errors.Is to find the cause")
	}
}

func TestError_IsSentinel(t *testing.T) {
	err := Newf(ErrCodeMultipleRecordsFound, "more than one route named %q", "default")

	if !errors.Is(err, ErrMultipleRecordsFound) {
		t.Errorf("Expected error to match sentinel by code")
	}
	if errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Expected errors with different codes to not match")
	}

	wrapped := fmt.Errorf("update failed: %w", err)
	if !errors.Is(wrapped, ErrMultipleRecordsFound) {
		t.Errorf("Expected wrapped error to match sentinel")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"plain", errors.New("plain"), ErrCodeInternal},
		{"domain", NewInvalidRecordError("name is required", nil), ErrCodeInvalidRecord},
		{"wrapped", fmt.Errorf("ctx: %w", ErrEndTokenNotFound), ErrCodeEndTokenNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("file not found")
	tests := []struct {
		err  *Error
		code ErrorCode
	}{
		{NewInvalidRecordError("m", cause), ErrCodeInvalidRecord},
		{NewInvalidOperationError("m", cause), ErrCodeInvalidOperation},
		{NewConfigError("m", cause), ErrCodeConfig},
		{NewIOError("m", cause), ErrCodeIO},
		{NewInternalError("m", cause), ErrCodeInternal},
	}

	for _, tt := range tests {
		if tt.err.Code != tt.code {
			t.Errorf("Expected code %v, got %v", tt.code, tt.err.Code)
		}
		if tt.err.Cause != cause {
			t.Errorf("Expected cause to be preserved for %v", tt.code)
		}
	}
}
