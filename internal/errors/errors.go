package errors

import "fmt"

// ErrorCode represents an adapter error code.
type ErrorCode string

const (
	ErrValidation ErrorCode = "VALIDATION" // 400
	ErrNotFound   ErrorCode = "NOT_FOUND"  // 404
	ErrUpstream   ErrorCode = "UPSTREAM"   // 502
	ErrTransport  ErrorCode = "TRANSPORT"  // 503
	ErrInternal   ErrorCode = "INTERNAL"   // 500
)

// AdapterError represents a structured error with code, status, and details.
type AdapterError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidation creates a 400 error for a malformed input parameter.
// The offending field name is carried in Details so callers can fix the input.
func NewValidation(field, msg string) *AdapterError {
	return &AdapterError{
		Code:    ErrValidation,
		Status:  400,
		Message: fmt.Sprintf("invalid %s: %s", field, msg),
		Details: map[string]any{"field": field},
	}
}

// NewNotFound creates a 404 error for a single-record lookup miss.
// Distinct from an empty search result, which is not an error.
func NewNotFound(resource, id string) *AdapterError {
	return &AdapterError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
		Details: map[string]any{"resource": resource, "id": id},
	}
}

// NewUpstream creates a 502 error for a non-2xx, non-404 CRM API response.
// The body must already be redacted/truncated by the caller.
func NewUpstream(status int, body string) *AdapterError {
	return &AdapterError{
		Code:    ErrUpstream,
		Status:  502,
		Message: fmt.Sprintf("attio api error: status %d", status),
		Details: map[string]any{"upstream_status": status, "upstream_body": body},
	}
}

// NewTransport creates a 503 error for a connection or timeout failure.
// The adapter never retries; a caller may retry the whole tool call.
func NewTransport(err error) *AdapterError {
	return &AdapterError{
		Code:    ErrTransport,
		Status:  503,
		Message: fmt.Sprintf("attio api unreachable: %v", err),
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *AdapterError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &AdapterError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is an AdapterError with the given code.
func Is(err error, code ErrorCode) bool {
	if aErr, ok := err.(*AdapterError); ok {
		return aErr.Code == code
	}
	return false
}
