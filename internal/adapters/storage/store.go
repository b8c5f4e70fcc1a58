package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/jsamuelsen/quotebook/internal/ports"
)

// Backend names accepted by Open.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds backend selection and location settings.
type Config struct {
	// Backend is one of diskv, sqlite, or memory.
	Backend string

	// Path is the base directory for the diskv backend.
	Path string

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string

	// CacheSize is the diskv read cache size in bytes.
	CacheSize uint64
}

// Store is a KeyValueStore that owns resources released by Close.
type Store interface {
	ports.KeyValueStore
	io.Closer
}

// Open creates the backend named by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendDiskv, "":
		return NewDiskvStore(cfg.Path, cfg.CacheSize)
	case BackendSQLite:
		return NewSQLiteStore(ctx, cfg.SQLitePath)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
