package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigDir is where Load looks for YAML files.
const DefaultConfigDir = "configs"

const envPrefix = "APP_"

type section = map[string]any

func defaults() section {
	return section{
		"app": section{"name": "quotebook", "version": "dev", "environment": "local"},
		"server": section{
			"host":             "0.0.0.0",
			"port":             DefaultServerPort,
			"read_timeout":     30 * time.Second,
			"write_timeout":    30 * time.Second,
			"idle_timeout":     2 * time.Minute,
			"shutdown_timeout": 10 * time.Second,
			"max_request_size": DefaultMaxRequestSize,
		},
		"log": section{
			"level":  "info",
			"format": "json",
			"file": section{
				"enabled":     false,
				"path":        "./logs/app.log",
				"max_size":    DefaultLogFileMaxSizeMB,
				"max_backups": DefaultLogFileMaxBackups,
				"max_age":     DefaultLogFileMaxAgeDays,
				"compress":    true,
			},
		},
		"telemetry": section{"enabled": false, "endpoint": "", "service_name": "quotebook", "sampling_rate": 1.0},
		"auth": section{
			"enabled":        false,
			"subject_header": "X-User-ID",
			"roles_header":   "X-User-Roles",
			"scopes_header":  "X-User-Scopes",
		},
		"storage": section{
			"backend":     "diskv",
			"path":        "./data",
			"sqlite_path": "./data/quotebook.db",
			"cache_size":  DefaultStorageCacheSize,
		},
		"session": section{"cookie_name": "quotebook_session", "ttl": 24 * time.Hour, "secure": false},
		"sync": section{
			"enabled":  true,
			"interval": 30 * time.Second,
			"base_url": "https://jsonplaceholder.typicode.com",
			"name":     "quote-feed",
			"limit":    DefaultSyncLimit,
			"category": "Server",
			"timeout":  10 * time.Second,
			"breaker": section{
				"enabled":      false,
				"max_failures": DefaultBreakerMaxFailures,
				"cooldown":     time.Minute,
				"probes":       DefaultBreakerProbes,
			},
			"transport": section{
				"max_idle_conns":          DefaultTransportMaxIdleConns,
				"max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
				"idle_conn_timeout":       DefaultTransportIdleConnTimeout,
			},
		},
		"random": section{"seed": 0},
	}
}

// Load reads DefaultConfigDir. See LoadFrom.
func Load(profile string) (*Config, error) {
	return LoadFrom(DefaultConfigDir, profile)
}

// LoadFrom layers, lowest first: built-in defaults, dir/base.yaml,
// dir/<profile>.yaml, then APP_* variables. Missing files are skipped.
// The result is not validated; call Validate.
func LoadFrom(dir, profile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), ""), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	files := []string{"base"}
	if profile != "" {
		files = append(files, profile)
	}

	for _, name := range files {
		if err := loadYAML(k, filepath.Join(dir, name+".yaml")); err != nil {
			return nil, fmt.Errorf("loading %s config: %w", name, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper(k.Keys())), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return &cfg, nil
}

func loadYAML(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}

// envKeyMapper turns APP_SYNC_BASE_URL into sync.base_url. Underscores are
// ambiguous, so names are first matched against the known keys; unknown
// names split on every underscore.
func envKeyMapper(keys []string) func(string) string {
	byEnv := make(map[string]string, len(keys))
	for _, key := range keys {
		byEnv[strings.ReplaceAll(key, ".", "_")] = key
	}

	return func(name string) string {
		name = strings.ToLower(strings.TrimPrefix(name, envPrefix))
		if key, ok := byEnv[name]; ok {
			return key
		}

		return strings.ReplaceAll(name, "_", ".")
	}
}
