package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebook/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotebook/internal/adapters/storage"
	"github.com/jsamuelsen/quotebook/internal/app"
	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/platform/config"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

const testCookie = "qb_test"

// testMaxImport keeps the upload cap small enough to exceed in a test.
const testMaxImport = 1 << 10

// fixture wires the real service over in-memory stores.
type fixture struct {
	router   *gin.Engine
	service  *app.QuoteService
	store    *storage.QuoteStore
	sessions *storage.MemorySessionStore
	cookie   *http.Cookie
}

func newFixture(t *testing.T, seed []domain.Quote, syncer Syncer) *fixture {
	t.Helper()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := storage.NewQuoteStore(storage.NewMemoryStore())
	if seed != nil {
		require.NoError(t, store.Save(ctx, seed))
	}

	repo := app.NewRepository(app.RepositoryConfig{Store: store, Logger: logger})
	_, err := repo.Load(ctx)
	require.NoError(t, err)

	sessions := storage.NewMemorySessionStore(time.Hour)
	service := app.NewQuoteService(app.QuoteServiceConfig{
		Repository: repo,
		Sessions:   sessions,
		Picker:     ports.IndexPickerFunc(func(int) int { return 0 }),
		Logger:     logger,
	})

	router := gin.New()
	router.Use(middleware.Session(middleware.SessionConfig{CookieName: testCookie, TTL: time.Hour}))
	NewPageHandler(service, testMaxImport).RegisterPageRoutes(router)
	NewQuoteHandler(service, syncer).RegisterQuoteRoutes(router.Group("/api/v1"), &config.AuthConfig{})

	return &fixture{
		router:   router,
		service:  service,
		store:    store,
		sessions: sessions,
		cookie:   &http.Cookie{Name: testCookie, Value: "6f1c2a4e-0b7d-4c55-9a0e-2d3b4c5d6e7f"},
	}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	req.AddCookie(f.cookie)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	return w
}

func (f *fixture) get(path string) *httptest.ResponseRecorder {
	return f.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (f *fixture) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return f.do(req)
}

func (f *fixture) sendJSON(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return f.do(req)
}

func (f *fixture) session(t *testing.T, key string) string {
	t.Helper()

	v, err := f.sessions.Get(context.Background(), f.cookie.Value, key)
	if domain.IsNotFound(err) {
		return ""
	}

	require.NoError(t, err)

	return v
}

func seedQuotes() []domain.Quote {
	return []domain.Quote{
		{Text: "Stay hungry.", Category: "Motivation"},
		{Text: "Know thyself.", Category: "Wisdom"},
		{Text: "Keep going.", Category: "Motivation"},
	}
}
