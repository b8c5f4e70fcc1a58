package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// QuoteStore persists quotes and the category preference in a KeyValueStore.
type QuoteStore struct {
	kv ports.KeyValueStore
}

// NewQuoteStore wraps kv. Panics if kv is nil.
func NewQuoteStore(kv ports.KeyValueStore) *QuoteStore {
	if kv == nil {
		panic("storage: key-value store is required")
	}

	return &QuoteStore{kv: kv}
}

// Load decodes the quote list stored under ports.KeyQuotes.
func (s *QuoteStore) Load(ctx context.Context) ([]domain.Quote, error) {
	data, err := s.kv.Get(ctx, ports.KeyQuotes)
	if err != nil {
		return nil, err
	}

	return domain.ParseQuotes(ports.KeyQuotes, data)
}

// Save encodes quotes as a JSON array and stores it under ports.KeyQuotes.
func (s *QuoteStore) Save(ctx context.Context, quotes []domain.Quote) error {
	if quotes == nil {
		quotes = []domain.Quote{}
	}

	data, err := json.Marshal(quotes)
	if err != nil {
		return fmt.Errorf("encoding quotes: %w", err)
	}

	return s.kv.Set(ctx, ports.KeyQuotes, data)
}

// LastCategory returns the stored selection or domain.ErrNotFound.
func (s *QuoteStore) LastCategory(ctx context.Context) (string, error) {
	data, err := s.kv.Get(ctx, ports.KeyLastCategory)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// SetLastCategory stores the selection as plain text.
func (s *QuoteStore) SetLastCategory(ctx context.Context, category string) error {
	return s.kv.Set(ctx, ports.KeyLastCategory, []byte(category))
}

// Name implements ports.HealthChecker by delegating to the backend.
func (s *QuoteStore) Name() string { return s.kv.Name() }

// Check implements ports.HealthChecker by delegating to the backend.
func (s *QuoteStore) Check(ctx context.Context) error { return s.kv.Check(ctx) }
