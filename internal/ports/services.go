// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable, etc.)
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/jsamuelsen/quotebook/internal/domain"
)

// RemoteQuoteSource fetches quotes from an upstream feed.
// Adapters translate the upstream payload into domain quotes so the
// application never sees the external shape.
//
// Example usage in application layer:
//
//	quotes, err := source.FetchQuotes(ctx, 5)
//	if err != nil {
//	    return err
//	}
//	return repo.MergeFromRemote(ctx, quotes)
type RemoteQuoteSource interface {
	// FetchQuotes retrieves up to limit quotes.
	// Returns domain.ErrUnavailable if the feed is unreachable and a
	// domain.FormatError if the payload cannot be mapped.
	FetchQuotes(ctx context.Context, limit int) ([]domain.Quote, error)
}

// IndexPicker chooses an index in [0, n).
// Injected so that random selection is deterministic under test.
type IndexPicker interface {
	// Pick returns an index in [0, n). n is always greater than zero.
	Pick(n int) int
}

// IndexPickerFunc adapts a function to IndexPicker.
type IndexPickerFunc func(n int) int

// Pick calls f(n).
func (f IndexPickerFunc) Pick(n int) int { return f(n) }
