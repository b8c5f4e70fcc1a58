// Package clients provides the instrumented HTTP client used to reach
// downstream services such as the remote quote feed.
package clients

import "errors"

// Transport failures. The acl package translates them into domain errors.
var (
	// ErrCircuitOpen means the breaker rejected the request without sending it.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrRequestFailed wraps a request that produced no response.
	ErrRequestFailed = errors.New("request failed")
)
