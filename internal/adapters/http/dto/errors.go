// Package dto holds the JSON shapes of the quote API and the helpers that
// bind, validate and answer requests with them.
package dto

import "net/http"

// Machine-readable error codes and the status each one is sent with.
const (
	ErrorCodeBadRequest    = "BAD_REQUEST"
	ErrorCodeValidation    = "VALIDATION_ERROR"
	ErrorCodeInvalidJSON   = "INVALID_JSON"
	ErrorCodeInvalidFormat = "INVALID_FORMAT"
	ErrorCodeForbidden     = "FORBIDDEN"
	ErrorCodeNotFound      = "NOT_FOUND"
	ErrorCodeConflict      = "CONFLICT"
	ErrorCodeInternal      = "INTERNAL_ERROR"
	ErrorCodeUnavailable   = "SERVICE_UNAVAILABLE"
	ErrorCodeTimeout       = "TIMEOUT"
	ErrorCodeTooLarge      = "PAYLOAD_TOO_LARGE"
)

var codeStatus = map[string]int{
	ErrorCodeBadRequest:    http.StatusBadRequest,
	ErrorCodeValidation:    http.StatusBadRequest,
	ErrorCodeInvalidJSON:   http.StatusBadRequest,
	ErrorCodeInvalidFormat: http.StatusBadRequest,
	ErrorCodeForbidden:     http.StatusForbidden,
	ErrorCodeNotFound:      http.StatusNotFound,
	ErrorCodeConflict:      http.StatusConflict,
	ErrorCodeInternal:      http.StatusInternalServerError,
	ErrorCodeUnavailable:   http.StatusServiceUnavailable,
	ErrorCodeTimeout:       http.StatusGatewayTimeout,
	ErrorCodeTooLarge:      http.StatusRequestEntityTooLarge,
}

// HTTPStatusFromCode returns the status for code; unknown codes are 500.
func HTTPStatusFromCode(code string) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}

	return http.StatusInternalServerError
}

// ErrorResponse is the envelope of every error answer.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail is the body of an ErrorResponse. Details is only set for
// validation failures, keyed by field.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func NewErrorResponse(code, message string) *ErrorResponse {
	return NewErrorResponseWithDetails(code, message, nil)
}

func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Details: details}}
}

// WithTraceID stamps the response with the request's trace ID.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}
