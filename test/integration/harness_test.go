//go:build integration

package integration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quotebook/internal/adapters/clients"
	"github.com/jsamuelsen/quotebook/internal/adapters/clients/acl"
	quotehttp "github.com/jsamuelsen/quotebook/internal/adapters/http"
	"github.com/jsamuelsen/quotebook/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotebook/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotebook/internal/adapters/storage"
	"github.com/jsamuelsen/quotebook/internal/app"
	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/platform/config"
	"github.com/jsamuelsen/quotebook/internal/platform/metrics"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeFeed stands in for the remote /posts endpoint.
type fakeFeed struct {
	mu     sync.Mutex
	status int
	body   string
	calls  int
}

func (f *fakeFeed) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = io.WriteString(w, f.body)
}

func (f *fakeFeed) serve(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.status, f.body = status, body
}

func (f *fakeFeed) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

func newFeedServer(t *testing.T, feed *fakeFeed) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(feed)
	t.Cleanup(server.Close)

	return server
}

// postsJSON renders titles as a JSONPlaceholder style posts array.
func postsJSON(titles ...string) string {
	body := "["

	for i, title := range titles {
		if i > 0 {
			body += ","
		}

		body += fmt.Sprintf(`{"id":%d,"userId":1,"title":%q,"body":"..."}`, i+1, title)
	}

	return body + "]"
}

// harness runs the full HTTP stack in process over a real store and a
// fake remote feed.
type harness struct {
	dir      string
	store    storage.Store
	quotes   *storage.QuoteStore
	repo     *app.Repository
	agent    *app.SyncAgent
	feed     *fakeFeed
	feedSrv  *httptest.Server
	server   *httptest.Server
	client   *http.Client
	registry *prometheus.Registry
}

type harnessOptions struct {
	backend  string
	interval time.Duration
	auth     config.AuthConfig
}

func newHarness(opts harnessOptions) (*harness, error) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dir, err := os.MkdirTemp("", "quotebook-it-*")
	if err != nil {
		return nil, err
	}

	h := &harness{dir: dir, feed: &fakeFeed{status: http.StatusOK, body: "[]"}}

	h.store, err = storage.Open(ctx, storage.Config{
		Backend:    opts.backend,
		Path:       filepath.Join(dir, "data"),
		SQLitePath: filepath.Join(dir, "quotebook.db"),
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	h.registry = prometheus.NewRegistry()

	collectors, err := metrics.New(h.registry)
	if err != nil {
		h.Close()
		return nil, err
	}

	h.quotes = storage.NewQuoteStore(h.store)
	h.repo = app.NewRepository(app.RepositoryConfig{Store: h.quotes, Logger: logger, Recorder: collectors})

	if _, err := h.repo.Load(ctx); err != nil {
		h.Close()
		return nil, err
	}

	h.feedSrv = httptest.NewServer(h.feed)

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     h.feedSrv.URL,
		ServiceName: "quote-feed",
		Timeout:     2 * time.Second,
		Logger:      logger,
	})
	if err != nil {
		h.Close()
		return nil, err
	}

	feedClient := acl.NewFeedClient(acl.FeedClientConfig{Client: httpClient, Logger: logger})

	h.agent = app.NewSyncAgent(app.SyncAgentConfig{
		Source:     feedClient,
		Repository: h.repo,
		Interval:   opts.interval,
		Logger:     logger,
		Recorder:   collectors,
	})

	service := app.NewQuoteService(app.QuoteServiceConfig{
		Repository: h.repo,
		Sessions:   storage.NewMemorySessionStore(time.Hour),
		Picker:     ports.IndexPickerFunc(func(int) int { return 0 }),
		Logger:     logger,
	})

	health := ports.NewHealthRegistry()
	_ = health.Register(h.quotes)
	_ = health.Register(feedClient)

	engine := gin.New()
	quotehttp.SetupRouter(engine, quotehttp.RouterConfig{
		Logger:        logger,
		AuthConfig:    &opts.auth,
		AppConfig:     &config.AppConfig{Name: "quotebook", Version: "it", Environment: "test"},
		HealthHandler: handlers.NewHealthHandler(health, handlers.NewBuildInfo("it", "none", "now"), h.registry),
		PageHandler:   handlers.NewPageHandler(service, config.DefaultMaxRequestSize),
		QuoteHandler:  handlers.NewQuoteHandler(service, h.agent),
		Session:       middleware.SessionConfig{CookieName: "quotebook_session", TTL: time.Hour},
		Timeout:       5 * time.Second,
	})

	h.server = httptest.NewServer(engine)

	jar, err := cookiejar.New(nil)
	if err != nil {
		h.Close()
		return nil, err
	}

	h.client = &http.Client{
		Jar:     jar,
		Timeout: 10 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return h, nil
}

// seed replaces the stored quotes and reloads the repository.
func (h *harness) seed(quotes []domain.Quote) error {
	ctx := context.Background()

	if err := h.quotes.Save(ctx, quotes); err != nil {
		return err
	}

	_, err := h.repo.Load(ctx)

	return err
}

func (h *harness) url(path string) string {
	return h.server.URL + path
}

func (h *harness) Close() {
	h.agent.Stop()

	if h.server != nil {
		h.server.Close()
	}

	if h.feedSrv != nil {
		h.feedSrv.Close()
	}

	if h.store != nil {
		_ = h.store.Close()
	}

	_ = os.RemoveAll(h.dir)
}
