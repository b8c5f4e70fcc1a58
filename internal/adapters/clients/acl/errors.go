package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quotebook/internal/adapters/clients"
	"github.com/jsamuelsen/quotebook/internal/domain"
)

// ErrorBody is what a downstream API may put in an error response. Both the
// {"error":{...}} envelope and a flat {"code","message"} object are accepted.
type ErrorBody struct {
	Nested struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
	FlatCode    string `json:"code,omitempty"`
	FlatMessage string `json:"message,omitempty"`
}

// Code prefers the nested code.
func (b *ErrorBody) Code() string {
	return firstNonEmpty(b.Nested.Code, b.FlatCode)
}

// Message prefers the nested message.
func (b *ErrorBody) Message() string {
	return firstNonEmpty(b.Nested.Message, b.FlatMessage)
}

// ParseErrorBody decodes r, returning nil when it is missing, not JSON or
// carries neither a code nor a message.
func ParseErrorBody(r io.Reader) *ErrorBody {
	if r == nil {
		return nil
	}

	var body ErrorBody
	if json.NewDecoder(r).Decode(&body) != nil {
		return nil
	}

	if body.Code() == "" && body.Message() == "" {
		return nil
	}

	return &body
}

// MapHTTPError converts a failed downstream call into a domain error. resp
// is nil when clientErr is set; a 2xx resp maps to nil. entityID ends up in
// the NotFoundError and is usually the request path.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation, entityID string) error {
	switch {
	case clientErr != nil:
		return transportError(clientErr, serviceName, operation)
	case resp == nil:
		return domain.NewUnavailableError(serviceName, "no response received")
	case resp.StatusCode < http.StatusMultipleChoices && resp.StatusCode >= http.StatusOK:
		return nil
	}

	return statusError(resp.StatusCode, ParseErrorBody(resp.Body), serviceName, operation, entityID)
}

func transportError(err error, serviceName, operation string) error {
	if errors.Is(err, clients.ErrCircuitOpen) {
		return domain.NewUnavailableError(serviceName, "circuit breaker open during "+operation)
	}

	return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s failed: %v", operation, err))
}

func statusError(status int, body *ErrorBody, serviceName, operation, entityID string) error {
	msg := fmt.Sprintf("%s failed with status %d", operation, status)
	if body != nil && body.Message() != "" {
		msg = body.Message()
	}

	switch {
	case status == http.StatusNotFound:
		return domain.NewNotFoundError(serviceName, entityID)
	case status == http.StatusConflict:
		return domain.NewConflictError(serviceName, msg)
	case status == http.StatusUnauthorized:
		return domain.NewForbiddenError(operation, "authentication required")
	case status == http.StatusForbidden:
		return domain.NewForbiddenError(operation, msg)
	case status == http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")
	case status >= http.StatusInternalServerError:
		return domain.NewUnavailableError(serviceName, msg)
	}

	// Remaining 4xx: the request itself was wrong.
	if body != nil {
		for field, detail := range body.Nested.Details {
			return domain.NewValidationError(field, detail)
		}
	}

	return domain.NewValidationError("", msg)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}

	return b
}
