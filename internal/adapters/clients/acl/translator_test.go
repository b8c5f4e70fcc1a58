package acl

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebook/internal/adapters/clients"
	"github.com/jsamuelsen/quotebook/internal/domain"
)

// testConfig returns a single-attempt client config without a breaker.
func testConfig(baseURL string) *clients.Config {
	return &clients.Config{
		ServiceName: "quote-feed",
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
	}
}

func TestNewBaseAdapter(t *testing.T) {
	client, err := clients.New(testConfig("http://example.com"))
	require.NoError(t, err)

	t.Run("explicit name", func(t *testing.T) {
		adapter := NewBaseAdapter(client, "my-feed")

		assert.Equal(t, "my-feed", adapter.ServiceName())
		assert.Same(t, client, adapter.Client())
	})

	t.Run("falls back to client name", func(t *testing.T) {
		adapter := NewBaseAdapter(client, "")

		assert.Equal(t, "quote-feed", adapter.ServiceName())
	})
}

func TestDecodeResponse(t *testing.T) {
	type post struct {
		Title string `json:"title"`
	}

	t.Run("success", func(t *testing.T) {
		got, err := DecodeResponse[[]post](io.NopCloser(strings.NewReader(`[{"title":"a"},{"title":"b"}]`)))

		require.NoError(t, err)
		assert.Equal(t, []post{{Title: "a"}, {Title: "b"}}, got)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := DecodeResponse[[]post](io.NopCloser(strings.NewReader(`[{`)))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding response")
	})

	t.Run("nil body", func(t *testing.T) {
		_, err := DecodeResponse[[]post](nil)

		require.Error(t, err)
	})
}

func TestDecodeError(t *testing.T) {
	_, shapeErr := DecodeResponse[[]string](io.NopCloser(strings.NewReader(`{"not":"an array"}`)))
	_, syntaxErr := DecodeResponse[[]string](io.NopCloser(strings.NewReader(`[1,`)))

	assert.True(t, domain.IsFormat(DecodeError("quote-feed", "a JSON array", shapeErr)))
	assert.True(t, domain.IsParse(DecodeError("quote-feed", "a JSON array", syntaxErr)))
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`["a","b"]`))
		case "/object":
			_, _ = w.Write([]byte(`{"a":1}`))
		case "/broken":
			_, _ = w.Write([]byte(`["a",`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := clients.New(testConfig(srv.URL))
	require.NoError(t, err)

	adapter := NewBaseAdapter(client, "")
	fetch := func(path string) ([]string, error) {
		return GetJSON[[]string](context.Background(), &adapter, path, "list", "a JSON array")
	}

	got, err := fetch("/ok")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	_, err = fetch("/object")
	assert.True(t, domain.IsFormat(err), "%v", err)

	_, err = fetch("/broken")
	assert.True(t, domain.IsParse(err), "%v", err)

	_, err = fetch("/missing")
	assert.True(t, domain.IsNotFound(err), "%v", err)
}

func TestTranslateSlice(t *testing.T) {
	type external struct{ Title string }

	upper := func(ext *external) (domain.Quote, error) {
		if ext.Title == "" {
			return domain.Quote{}, errors.New("empty title")
		}

		return domain.Quote{Text: strings.ToUpper(ext.Title), Category: "Server"}, nil
	}

	t.Run("success keeps order", func(t *testing.T) {
		got, err := TranslateSlice([]external{{"a"}, {"b"}}, upper)

		require.NoError(t, err)
		assert.Equal(t, []domain.Quote{{Text: "A", Category: "Server"}, {Text: "B", Category: "Server"}}, got)
	})

	t.Run("reports failing index", func(t *testing.T) {
		_, err := TranslateSlice([]external{{"a"}, {""}}, upper)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "item 1")
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := TranslateSlice([]external{}, upper)

		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
