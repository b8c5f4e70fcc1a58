package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/platform/logging"
	"github.com/jsamuelsen/quotebook/internal/platform/metrics"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// Recorder receives domain measurements.
// It is satisfied by metrics.Collectors.
type Recorder interface {
	QuoteCount(n int)
	QuotesAdded(source string, n int)
	SyncTick(result string)
}

type nopRecorder struct{}

func (nopRecorder) QuoteCount(int)          {}
func (nopRecorder) QuotesAdded(string, int) {}
func (nopRecorder) SyncTick(string)         {}

// Repository owns the ordered quote list and keeps it in sync with the store.
//
// Every mutation persists the full list before the in-memory copy is
// replaced, so a failed save leaves the repository unchanged. A single mutex
// makes each mutate-and-save atomic with respect to the others.
type Repository struct {
	mu       sync.RWMutex
	store    ports.QuoteStore
	quotes   []domain.Quote
	logger   *slog.Logger
	recorder Recorder
}

// RepositoryConfig contains dependencies for the repository.
type RepositoryConfig struct {
	Store    ports.QuoteStore
	Logger   *slog.Logger
	Recorder Recorder
}

// NewRepository creates an empty repository. Call Load before use.
// Panics if Store is nil.
func NewRepository(cfg RepositoryConfig) *Repository {
	if cfg.Store == nil {
		panic("app: quote store is required")
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.Recorder == nil {
		cfg.Recorder = nopRecorder{}
	}

	return &Repository{
		store:    cfg.Store,
		logger:   cfg.Logger,
		recorder: cfg.Recorder,
	}
}

// Load reads the stored list. When nothing usable is stored the default
// quotes are used instead. Store I/O failures are returned.
func (r *Repository) Load(ctx context.Context) ([]domain.Quote, error) {
	logger := r.log(ctx)

	quotes, err := r.store.Load(ctx)

	switch {
	case err == nil:
	case domain.IsNotFound(err):
		logger.DebugContext(ctx, "no stored quotes, using defaults")

		quotes = domain.DefaultQuotes()
	case domain.IsParse(err), domain.IsFormat(err):
		logger.WarnContext(ctx, "stored quotes unusable, using defaults", slog.Any("error", err))

		quotes = domain.DefaultQuotes()
	default:
		return nil, fmt.Errorf("loading quotes: %w", err)
	}

	r.mu.Lock()
	r.quotes = quotes
	r.mu.Unlock()

	r.recorder.QuoteCount(len(quotes))

	logger.InfoContext(ctx, "quotes loaded", slog.Int("count", len(quotes)))

	return slices.Clone(quotes), nil
}

// All returns a copy of the current list in order.
func (r *Repository) All() []domain.Quote {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.quotes)
}

// Len returns the number of quotes.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.quotes)
}

// Add trims text and category, appends the quote and persists the list.
// Returns a ValidationError when either field is empty after trimming.
func (r *Repository) Add(ctx context.Context, text, category string) (domain.Quote, error) {
	q := domain.Quote{
		Text:     strings.TrimSpace(text),
		Category: strings.TrimSpace(category),
	}

	if q.Text == "" {
		return domain.Quote{}, domain.NewValidationError("text", "must not be empty")
	}

	if q.Category == "" {
		return domain.Quote{}, domain.NewValidationError("category", "must not be empty")
	}

	err := r.commit(ctx, func(current []domain.Quote) []domain.Quote {
		return append(slices.Clone(current), q)
	})
	if err != nil {
		return domain.Quote{}, err
	}

	r.recorder.QuotesAdded(metrics.SourceForm, 1)

	return q, nil
}

// ImportMany appends quotes as given and persists the list.
func (r *Repository) ImportMany(ctx context.Context, quotes []domain.Quote) (int, error) {
	err := r.commit(ctx, func(current []domain.Quote) []domain.Quote {
		return append(slices.Clone(current), quotes...)
	})
	if err != nil {
		return 0, err
	}

	r.recorder.QuotesAdded(metrics.SourceImport, len(quotes))

	return len(quotes), nil
}

// MergeFromRemote prepends quotes ahead of the existing list and persists it.
// Duplicates are kept.
func (r *Repository) MergeFromRemote(ctx context.Context, quotes []domain.Quote) (int, error) {
	err := r.commit(ctx, func(current []domain.Quote) []domain.Quote {
		return slices.Concat(quotes, current)
	})
	if err != nil {
		return 0, err
	}

	r.recorder.QuotesAdded(metrics.SourceRemote, len(quotes))

	return len(quotes), nil
}

// commit builds the next list, saves it, then swaps it in.
func (r *Repository) commit(ctx context.Context, next func([]domain.Quote) []domain.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated := next(r.quotes)

	if err := r.store.Save(ctx, updated); err != nil {
		r.log(ctx).ErrorContext(ctx, "failed to save quotes", slog.Any("error", err))

		return fmt.Errorf("saving quotes: %w", err)
	}

	r.quotes = updated
	r.recorder.QuoteCount(len(updated))

	return nil
}

func (r *Repository) log(ctx context.Context) *slog.Logger {
	if l, ok := logging.Lookup(ctx); ok {
		return l
	}

	return r.logger
}
