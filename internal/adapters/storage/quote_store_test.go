package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebook/internal/domain"
)

func TestQuoteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	store := NewQuoteStore(kv)

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, domain.ErrNotFound)

	quotes := []domain.Quote{{Text: "a", Category: "x"}, {Text: "b", Category: "y"}}
	require.NoError(t, store.Save(ctx, quotes))

	raw, err := kv.Get(ctx, "quotes")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"text":"a","category":"x"},{"text":"b","category":"y"}]`, string(raw))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, quotes, got)
}

func TestQuoteStore_SaveNil(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	store := NewQuoteStore(kv)

	require.NoError(t, store.Save(ctx, nil))

	raw, err := kv.Get(ctx, "quotes")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestQuoteStore_LoadUnusable(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		check func(error) bool
	}{
		{name: "garbage", raw: "{{", check: domain.IsParse},
		{name: "object", raw: `{"text":"a"}`, check: domain.IsFormat},
		{name: "string", raw: `"hello"`, check: domain.IsFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := NewMemoryStore()
			require.NoError(t, kv.Set(ctx, "quotes", []byte(tt.raw)))

			_, err := NewQuoteStore(kv).Load(ctx)
			require.Error(t, err)
			assert.True(t, tt.check(err))
		})
	}
}

func TestQuoteStore_LastCategory(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	store := NewQuoteStore(kv)

	_, err := store.LastCategory(ctx)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.SetLastCategory(ctx, "Wisdom"))

	got, err := store.LastCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Wisdom", got)

	raw, err := kv.Get(ctx, "lastCategory")
	require.NoError(t, err)
	assert.Equal(t, "Wisdom", string(raw))
}

func TestQuoteStore_Health(t *testing.T) {
	store := NewQuoteStore(NewMemoryStore())

	assert.Equal(t, "memory", store.Name())
	require.NoError(t, store.Check(context.Background()))
}

func TestNewQuoteStore_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewQuoteStore(nil) })
}
