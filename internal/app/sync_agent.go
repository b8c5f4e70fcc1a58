package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen/quotebook/internal/platform/logging"
	"github.com/jsamuelsen/quotebook/internal/platform/metrics"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// Sync agent defaults.
const (
	DefaultSyncInterval = 30 * time.Second
	DefaultSyncLimit    = 5
)

// ErrSyncRunning is returned by Start when the agent is already running.
var ErrSyncRunning = errors.New("sync agent already running")

// SyncAgent periodically fetches quotes from a remote source and prepends
// them to the repository. Ticks never overlap and failures are logged and
// skipped until the next tick.
type SyncAgent struct {
	source   ports.RemoteQuoteSource
	repo     *Repository
	interval time.Duration
	limit    int
	logger   *slog.Logger
	recorder Recorder

	// tickMu serializes ticks from the loop and from direct callers.
	tickMu sync.Mutex

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// SyncAgentConfig contains configuration for the sync agent.
type SyncAgentConfig struct {
	Source     ports.RemoteQuoteSource
	Repository *Repository
	Interval   time.Duration
	Limit      int
	Logger     *slog.Logger
	Recorder   Recorder
}

// NewSyncAgent creates a stopped agent. Panics if Source or Repository is nil.
func NewSyncAgent(cfg SyncAgentConfig) *SyncAgent {
	if cfg.Source == nil {
		panic("app: remote quote source is required")
	}

	if cfg.Repository == nil {
		panic("app: repository is required")
	}

	if cfg.Interval <= 0 {
		cfg.Interval = DefaultSyncInterval
	}

	if cfg.Limit <= 0 {
		cfg.Limit = DefaultSyncLimit
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.Recorder == nil {
		cfg.Recorder = nopRecorder{}
	}

	return &SyncAgent{
		source:   cfg.Source,
		repo:     cfg.Repository,
		interval: cfg.Interval,
		limit:    cfg.Limit,
		logger:   cfg.Logger,
		recorder: cfg.Recorder,
	}
}

// Tick fetches once and merges the result. Errors are logged at warn level
// and returned; the repository is untouched on failure.
func (a *SyncAgent) Tick(ctx context.Context) (int, error) {
	a.tickMu.Lock()
	defer a.tickMu.Unlock()

	logger := a.logger
	if l, ok := logging.Lookup(ctx); ok {
		logger = l
	}

	quotes, err := a.source.FetchQuotes(ctx, a.limit)
	if err != nil {
		a.recorder.SyncTick(metrics.ResultFailure)
		logger.WarnContext(ctx, "error syncing with server", slog.Any("error", err))

		return 0, err
	}

	n, err := a.repo.MergeFromRemote(ctx, quotes)
	if err != nil {
		a.recorder.SyncTick(metrics.ResultFailure)
		logger.WarnContext(ctx, "error syncing with server", slog.Any("error", err))

		return 0, err
	}

	a.recorder.SyncTick(metrics.ResultSuccess)
	logger.InfoContext(ctx, "synced with server", slog.Int("merged", n))

	return n, nil
}

// Run ticks every interval until ctx is cancelled. The first tick happens
// one interval after Run is called. Run always returns nil.
func (a *SyncAgent) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.logger.InfoContext(ctx, "sync agent started",
		slog.Duration("interval", a.interval),
		slog.Int("limit", a.limit),
	)

	for {
		select {
		case <-ctx.Done():
			a.logger.InfoContext(context.WithoutCancel(ctx), "sync agent stopped")
			return nil
		case <-ticker.C:
			if ctx.Err() != nil {
				return nil
			}

			// Errors are already logged and counted.
			_, _ = a.Tick(ctx)
		}
	}
}

// Start runs the agent in the background. Stop cancels it.
func (a *SyncAgent) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		return ErrSyncRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	a.cancel = cancel
	a.done = done

	go func() {
		defer close(done)
		_ = a.Run(ctx)
	}()

	return nil
}

// Stop cancels the background loop, including any fetch in flight, and
// waits for it to exit. Stop on a stopped agent is a no-op.
func (a *SyncAgent) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}

// Running reports whether the background loop is active.
func (a *SyncAgent) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.cancel != nil
}
