//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebook/internal/adapters/clients"
	"github.com/jsamuelsen/quotebook/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotebook/internal/platform/config"
)

const configDir = "../../configs"

// TestConfig_Profiles loads every shipped profile and validates it.
func TestConfig_Profiles(t *testing.T) {
	tests := []struct {
		profile     string
		environment string
		backend     string
		syncEnabled bool
		authEnabled bool
	}{
		{profile: "", environment: "local", backend: "diskv", syncEnabled: true},
		{profile: "local", environment: "local", backend: "diskv", syncEnabled: true},
		{profile: "test", environment: "test", backend: "memory", syncEnabled: false},
		{profile: "prod", environment: "prod", backend: "sqlite", syncEnabled: true, authEnabled: true},
	}

	for _, tt := range tests {
		t.Run("profile="+tt.profile, func(t *testing.T) {
			cfg, err := config.LoadFrom(configDir, tt.profile)
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())

			assert.Equal(t, "quotebook", cfg.App.Name)
			assert.Equal(t, tt.environment, cfg.App.Environment)
			assert.Equal(t, tt.backend, cfg.Storage.Backend)
			assert.Equal(t, tt.syncEnabled, cfg.Sync.Enabled)
			assert.Equal(t, tt.authEnabled, cfg.Auth.Enabled)

			assert.Equal(t, 30*time.Second, cfg.Sync.Interval)
			assert.Equal(t, 5, cfg.Sync.Limit)
			assert.Equal(t, "Server", cfg.Sync.Category)
		})
	}
}

// TestConfig_EnvOverridesProfile verifies APP_* variables win over the
// profile file.
func TestConfig_EnvOverridesProfile(t *testing.T) {
	t.Setenv("APP_STORAGE_BACKEND", "diskv")
	t.Setenv("APP_SYNC_INTERVAL", "5s")
	t.Setenv("APP_SESSION_COOKIE_NAME", "qb")

	cfg, err := config.LoadFrom(configDir, "test")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "diskv", cfg.Storage.Backend)
	assert.Equal(t, 5*time.Second, cfg.Sync.Interval)
	assert.Equal(t, "qb", cfg.Session.CookieName)
	assert.Equal(t, uint64(42), cfg.Random.Seed)
}

// TestConfig_InvalidOverride verifies validation rejects a bad value that
// only arrives through the environment.
func TestConfig_InvalidOverride(t *testing.T) {
	t.Setenv("APP_SYNC_LIMIT", "0")

	cfg, err := config.LoadFrom(configDir, "local")
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync.limit")
}

// TestConfig_FeedClientFromProfile builds the feed client from the test
// profile's sync settings and fetches through it.
func TestConfig_FeedClientFromProfile(t *testing.T) {
	feed := &fakeFeed{status: http.StatusOK, body: postsJSON("alpha", "beta", "gamma")}
	server := newFeedServer(t, feed)

	t.Setenv("APP_SYNC_BASE_URL", server.URL)
	t.Setenv("APP_SYNC_CATEGORY", "Remote")

	cfg, err := config.LoadFrom(configDir, "test")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Sync.BaseURL,
		ServiceName: cfg.Sync.Name,
		Timeout:     cfg.Sync.Timeout,
		Breaker:     cfg.Sync.Breaker,
		Transport:   cfg.Sync.Transport,
	})
	require.NoError(t, err)

	source := acl.NewFeedClient(acl.FeedClientConfig{Client: httpClient, Category: cfg.Sync.Category})

	quotes, err := source.FetchQuotes(context.Background(), cfg.Sync.Limit)
	require.NoError(t, err)
	require.Len(t, quotes, 3)

	for _, q := range quotes {
		assert.Equal(t, "Remote", q.Category)
	}

	assert.Equal(t, "alpha", quotes[0].Text)
	assert.Equal(t, 1, feed.callCount())
}
