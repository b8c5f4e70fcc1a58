package ports

import (
	"context"

	"github.com/jsamuelsen/quotebook/internal/domain"
)

// Durable store keys.
const (
	KeyQuotes       = "quotes"
	KeyLastCategory = "lastCategory"
)

// Session store keys.
const (
	SessionKeyLastQuote = "lastQuote"
	SessionKeyNotice    = "notice"
)

// KeyValueStore is a durable string-keyed byte store.
// Implementations may use files, an embedded database, or memory.
type KeyValueStore interface {
	HealthChecker

	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}

// QuoteStore persists the quote list and the last selected category.
// It is the persistence port seen by the quote repository.
type QuoteStore interface {
	// Load returns the stored quote list.
	// Returns domain.ErrNotFound when nothing is stored and a
	// domain.ParseError or domain.FormatError when the stored value is unusable.
	Load(ctx context.Context) ([]domain.Quote, error)

	// Save replaces the stored quote list.
	Save(ctx context.Context, quotes []domain.Quote) error

	// LastCategory returns the persisted category selection.
	// Returns domain.ErrNotFound when no selection has been stored.
	LastCategory(ctx context.Context) (string, error)

	// SetLastCategory persists the category selection.
	SetLastCategory(ctx context.Context, category string) error
}

// SessionStore holds short-lived values scoped to a browser session.
// Values vanish when the session expires.
type SessionStore interface {
	// Get returns the value stored under key for the session.
	// Returns domain.ErrNotFound if the session or key does not exist.
	Get(ctx context.Context, sessionID, key string) (string, error)

	// Set stores value under key for the session and refreshes its expiry.
	Set(ctx context.Context, sessionID, key, value string) error

	// Pop returns and removes the value under key.
	// Returns domain.ErrNotFound if the session or key does not exist.
	Pop(ctx context.Context, sessionID, key string) (string, error)
}
