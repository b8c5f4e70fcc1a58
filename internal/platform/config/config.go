// Package config loads quotebook settings with koanf and validates them with
// validator struct tags. Keys are snake_case and grouped by concern; every
// key can be overridden by an APP_ variable (sync.base_url is
// APP_SYNC_BASE_URL).
package config

import "time"

const (
	DefaultServerPort     = 8080
	DefaultMaxRequestSize = 1 << 20

	DefaultLogFileMaxSizeMB  = 100
	DefaultLogFileMaxBackups = 3
	DefaultLogFileMaxAgeDays = 28

	DefaultStorageCacheSize = 1 << 20

	DefaultSyncLimit          = 5
	DefaultBreakerMaxFailures = 5
	DefaultBreakerProbes      = 1

	DefaultTransportMaxIdleConns        = 100
	DefaultTransportMaxIdleConnsPerHost = 10
	DefaultTransportIdleConnTimeout     = 90 * time.Second
)

type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Auth      AuthConfig      `koanf:"auth"`
	Storage   StorageConfig   `koanf:"storage"   validate:"required"`
	Session   SessionConfig   `koanf:"session"   validate:"required"`
	Sync      SyncConfig      `koanf:"sync"      validate:"required"`
	Random    RandomConfig    `koanf:"random"`
}

type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig sizes the HTTP listener. MaxRequestSize caps every body,
// imports included.
type ServerConfig struct {
	Host            string        `koanf:"host"             validate:"required"`
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig picks the slog handler. "pretty" is the charmbracelet console
// handler meant for local runs.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig adds a lumberjack-rotated JSON copy of every record.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig points the OTLP exporters at a collector.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// AuthConfig names the headers a trusted gateway uses to assert the caller.
// With Enabled unset the write routes are open.
type AuthConfig struct {
	Enabled       bool   `koanf:"enabled"`
	SubjectHeader string `koanf:"subject_header" validate:"required_if=Enabled true"`
	RolesHeader   string `koanf:"roles_header"`
	ScopesHeader  string `koanf:"scopes_header"`
}

// StorageConfig selects the durable key-value backend.
type StorageConfig struct {
	Backend    string `koanf:"backend"     validate:"required,oneof=diskv sqlite memory"`
	Path       string `koanf:"path"        validate:"required_if=Backend diskv"`
	SQLitePath string `koanf:"sqlite_path" validate:"required_if=Backend sqlite"`
	CacheSize  uint64 `koanf:"cache_size"`
}

// SessionConfig holds the browser session cookie. Sessions idle longer
// than TTL are dropped.
type SessionConfig struct {
	CookieName string        `koanf:"cookie_name" validate:"required"`
	TTL        time.Duration `koanf:"ttl"         validate:"required,min=1m"`
	Secure     bool          `koanf:"secure"`
}

// SyncConfig drives the background agent that prepends feed posts.
type SyncConfig struct {
	Enabled   bool            `koanf:"enabled"`
	Interval  time.Duration   `koanf:"interval"  validate:"required,min=1s"`
	BaseURL   string          `koanf:"base_url"  validate:"required,url"`
	Name      string          `koanf:"name"      validate:"required"`
	Limit     int             `koanf:"limit"     validate:"required,min=1,max=100"`
	Category  string          `koanf:"category"  validate:"required"`
	Timeout   time.Duration   `koanf:"timeout"   validate:"required,min=100ms"`
	Breaker   BreakerConfig   `koanf:"breaker"   validate:"required"`
	Transport TransportConfig `koanf:"transport" validate:"required"`
}

// BreakerConfig guards the feed. MaxFailures consecutive failures open it
// for Cooldown, after which Probes trial requests decide whether it closes.
type BreakerConfig struct {
	Enabled     bool          `koanf:"enabled"`
	MaxFailures int           `koanf:"max_failures" validate:"required,min=1"`
	Cooldown    time.Duration `koanf:"cooldown"     validate:"required,min=1s"`
	Probes      int           `koanf:"probes"       validate:"required,min=1"`
}

type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

type RandomConfig struct {
	// Seed makes picks repeatable when non-zero.
	Seed uint64 `koanf:"seed"`
}
