package api

import (
	"encoding/json"
	"net/http"

	"github.com/lukassup/route-ctl/src/internal/errors"
	"github.com/lukassup/route-ctl/src/internal/log"
)

// ErrorCode represents standard API error codes.
type ErrorCode string

const (
	// ErrCodeInvalidRequest indicates malformed or invalid request data.
	ErrCodeInvalidRequest ErrorCode = "invalid_request"

	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"

	// ErrCodeConflict indicates duplicate or ambiguous routes.
	ErrCodeConflict ErrorCode = "conflict"

	// ErrCodePreconditionFailed indicates the route file changed since the client read it.
	ErrCodePreconditionFailed ErrorCode = "precondition_failed"

	// ErrCodeParseError indicates the route file on disk could not be parsed.
	ErrCodeParseError ErrorCode = "parse_error"

	// ErrCodeInternalError indicates an internal server error.
	ErrCodeInternalError ErrorCode = "internal_error"
)

// APIError represents a structured API error response.
type APIError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps an APIError for JSON responses.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code ErrorCode, message string) APIError {
	return APIError{
		Code:    code,
		Message: message,
	}
}

// WithDetails adds details to an APIError.
func (e APIError) WithDetails(details map[string]interface{}) APIError {
	e.Details = details
	return e
}

// WriteError writes an error response to the HTTP response writer.
func WriteError(w http.ResponseWriter, statusCode int, err APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if encErr := json.NewEncoder(w).Encode(ErrorResponse{Error: err}); encErr != nil {
		log.Warnf("Failed to write error response: %v", encErr)
	}
}

// WriteInvalidRequest writes a 400 Bad Request error.
func WriteInvalidRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, NewAPIError(ErrCodeInvalidRequest, message))
}

// WriteNotFound writes a 404 Not Found error.
func WriteNotFound(w http.ResponseWriter, resource string) {
	WriteError(w, http.StatusNotFound, NewAPIError(ErrCodeNotFound, resource+" not found"))
}

// WritePreconditionFailed writes a 412 Precondition Failed error.
func WritePreconditionFailed(w http.ResponseWriter, current string) {
	err := NewAPIError(ErrCodePreconditionFailed, "route file has been modified").
		WithDetails(map[string]interface{}{"revision": current})
	WriteError(w, http.StatusPreconditionFailed, err)
}

// WriteInternalError writes a 500 Internal Server Error.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// WriteDomainError maps a domain error onto its HTTP status.
func WriteDomainError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)
	details := map[string]interface{}{"error_code": string(code)}

	switch code {
	case errors.ErrCodeRecordNotFound:
		WriteError(w, http.StatusNotFound, NewAPIError(ErrCodeNotFound, err.Error()).WithDetails(details))
	case errors.ErrCodeMultipleRecordsFound, errors.ErrCodeEntryAlreadyExists:
		WriteError(w, http.StatusConflict, NewAPIError(ErrCodeConflict, err.Error()).WithDetails(details))
	case errors.ErrCodeInvalidRecord, errors.ErrCodeInvalidOperation:
		WriteError(w, http.StatusBadRequest, NewAPIError(ErrCodeInvalidRequest, err.Error()).WithDetails(details))
	case errors.ErrCodeStartTokenNotFound, errors.ErrCodeEndTokenNotFound:
		WriteError(w, http.StatusUnprocessableEntity, NewAPIError(ErrCodeParseError, err.Error()).WithDetails(details))
	default:
		log.Errorf("Request failed: %v", err)
		WriteError(w, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, err.Error()).WithDetails(details))
	}
}
