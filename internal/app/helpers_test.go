package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebook/internal/adapters/storage"
	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRepository returns a loaded repository over a memory store seeded
// with quotes. A nil seed leaves the store empty so defaults are used.
func newTestRepository(t *testing.T, seed []domain.Quote) (*Repository, *storage.QuoteStore) {
	t.Helper()

	store := storage.NewQuoteStore(storage.NewMemoryStore())
	if seed != nil {
		require.NoError(t, store.Save(context.Background(), seed))
	}

	repo := NewRepository(RepositoryConfig{Store: store, Logger: discardLogger()})

	_, err := repo.Load(context.Background())
	require.NoError(t, err)

	return repo, store
}

// fixedPicker always returns the same index.
func fixedPicker(i int) ports.IndexPickerFunc { return func(int) int { return i } }

// recorderSpy captures Recorder calls.
type recorderSpy struct {
	count int
	added map[string]int
	ticks map[string]int
}

func newRecorderSpy() *recorderSpy {
	return &recorderSpy{added: map[string]int{}, ticks: map[string]int{}}
}

func (r *recorderSpy) QuoteCount(n int)                 { r.count = n }
func (r *recorderSpy) QuotesAdded(source string, n int) { r.added[source] += n }
func (r *recorderSpy) SyncTick(result string)           { r.ticks[result]++ }
