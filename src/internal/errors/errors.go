// Package errors provides domain-specific error types for route-ctl.
//
// Errors carry a code from a small fixed taxonomy so that callers (the CLI
// and the HTTP API) can map them to exit codes and status codes without
// string matching.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeStartTokenNotFound indicates a missing file header or block head.
	ErrCodeStartTokenNotFound ErrorCode = "START_TOKEN_NOT_FOUND"

	// ErrCodeEndTokenNotFound indicates an unterminated record block.
	ErrCodeEndTokenNotFound ErrorCode = "END_TOKEN_NOT_FOUND"

	// ErrCodeInvalidRecord indicates a caller-supplied record lacks a required field.
	ErrCodeInvalidRecord ErrorCode = "INVALID_RECORD"

	// ErrCodeRecordNotFound indicates an update or validation targeted a missing record.
	ErrCodeRecordNotFound ErrorCode = "RECORD_NOT_FOUND"

	// ErrCodeMultipleRecordsFound indicates duplicate identities in the stored file.
	ErrCodeMultipleRecordsFound ErrorCode = "MULTIPLE_RECORDS_FOUND"

	// ErrCodeEntryAlreadyExists indicates a strict create hit an existing identity.
	ErrCodeEntryAlreadyExists ErrorCode = "ENTRY_ALREADY_EXISTS"

	// ErrCodeInvalidOperation indicates mutually exclusive or malformed caller input.
	ErrCodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// ErrCodeConfig indicates a configuration-related error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeIO indicates a failure reading or writing the route file.
	ErrCodeIO ErrorCode = "IO_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Sentinel errors for use with errors.Is. Matching is done by code only.
var (
	ErrStartTokenNotFound   = New(ErrCodeStartTokenNotFound, "start token not found")
	ErrEndTokenNotFound     = New(ErrCodeEndTokenNotFound, "end token not found")
	ErrInvalidRecord        = New(ErrCodeInvalidRecord, "invalid record")
	ErrRecordNotFound       = New(ErrCodeRecordNotFound, "record not found")
	ErrMultipleRecordsFound = New(ErrCodeMultipleRecordsFound, "multiple records found")
	ErrEntryAlreadyExists   = New(ErrCodeEntryAlreadyExists, "entry already exists")
	ErrInvalidOperation     = New(ErrCodeInvalidOperation, "invalid operation")
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new domain error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first domain error in the chain, or
// ErrCodeInternal when err carries none. A nil error has an empty code.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// NewInvalidRecordError creates a new invalid record error.
func NewInvalidRecordError(message string, cause error) *Error {
	return Wrap(ErrCodeInvalidRecord, message, cause)
}

// NewInvalidOperationError creates a new invalid operation error.
func NewInvalidOperationError(message string, cause error) *Error {
	return Wrap(ErrCodeInvalidOperation, message, cause)
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewIOError creates a new route file I/O error.
func NewIOError(message string, cause error) *Error {
	return Wrap(ErrCodeIO, message, cause)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}
