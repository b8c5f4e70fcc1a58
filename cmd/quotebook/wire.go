package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quotebook/internal/adapters/clients"
	"github.com/jsamuelsen/quotebook/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotebook/internal/adapters/storage"
	"github.com/jsamuelsen/quotebook/internal/app"
	"github.com/jsamuelsen/quotebook/internal/platform/config"
	"github.com/jsamuelsen/quotebook/internal/platform/metrics"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// cliSession is the session every one-shot command shares.
const cliSession = "cli"

// components is the object graph shared by serve and the one-shot commands.
type components struct {
	store    storage.Store
	quotes   *storage.QuoteStore
	repo     *app.Repository
	sessions *storage.MemorySessionStore
	service  *app.QuoteService
	feed     *acl.FeedClient
	agent    *app.SyncAgent
	health   *ports.DefaultHealthRegistry
}

// wire opens the store, loads the quotes and builds everything on top.
// reg receives the domain collectors; nil skips metrics.
func wire(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*components, error) {
	var recorder app.Recorder

	if reg != nil {
		collectors, err := metrics.New(reg)
		if err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}

		recorder = collectors
	}

	store, err := storage.Open(ctx, storage.Config{
		Backend:    cfg.Storage.Backend,
		Path:       cfg.Storage.Path,
		SQLitePath: cfg.Storage.SQLitePath,
		CacheSize:  cfg.Storage.CacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Storage.Backend, err)
	}

	c := &components{
		store:  store,
		quotes: storage.NewQuoteStore(store),
		health: ports.NewHealthRegistry(),
	}

	c.repo = app.NewRepository(app.RepositoryConfig{
		Store:    c.quotes,
		Logger:   logger,
		Recorder: recorder,
	})

	if _, err := c.repo.Load(ctx); err != nil {
		return nil, errors.Join(err, c.close())
	}

	c.sessions = storage.NewMemorySessionStore(cfg.Session.TTL)
	c.service = app.NewQuoteService(app.QuoteServiceConfig{
		Repository: c.repo,
		Sessions:   c.sessions,
		Picker:     app.NewRandomPicker(cfg.Random.Seed),
		Logger:     logger,
	})

	c.feed, err = newFeedClient(cfg, logger)
	if err != nil {
		return nil, errors.Join(err, c.close())
	}

	c.agent = app.NewSyncAgent(app.SyncAgentConfig{
		Source:     c.feed,
		Repository: c.repo,
		Interval:   cfg.Sync.Interval,
		Limit:      cfg.Sync.Limit,
		Logger:     logger,
		Recorder:   recorder,
	})

	for _, checker := range []ports.HealthChecker{c.quotes, c.feed} {
		if err := c.health.Register(checker); err != nil {
			return nil, errors.Join(fmt.Errorf("registering %s health check: %w", checker.Name(), err), c.close())
		}
	}

	return c, nil
}

// newFeedClient builds the remote feed adapter. Each tick makes a single
// attempt; the breaker only acts when sync.breaker.enabled is set.
func newFeedClient(cfg *config.Config, logger *slog.Logger) (*acl.FeedClient, error) {
	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Sync.BaseURL,
		ServiceName: cfg.Sync.Name,
		Timeout:     cfg.Sync.Timeout,
		Breaker:     cfg.Sync.Breaker,
		Transport:   cfg.Sync.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating feed client: %w", err)
	}

	return acl.NewFeedClient(acl.FeedClientConfig{
		Client:   httpClient,
		Category: cfg.Sync.Category,
		Logger:   logger,
	}), nil
}

func (c *components) close() error {
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}

	return nil
}
