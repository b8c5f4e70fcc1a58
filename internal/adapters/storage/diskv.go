package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"github.com/jsamuelsen/quotebook/internal/domain"
)

// DefaultCacheSize is the diskv read cache size used when none is configured.
const DefaultCacheSize = 1024 * 1024

// DiskvStore is a KeyValueStore backed by one file per key.
type DiskvStore struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskvStore creates a store rooted at basePath.
// The directory is created if it does not exist.
func NewDiskvStore(basePath string, cacheSize uint64) (*DiskvStore, error) {
	if basePath == "" {
		return nil, errors.New("diskv store requires a base path")
	}

	if err := os.MkdirAll(basePath, 0o750); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	if cacheSize == 0 {
		cacheSize = DefaultCacheSize
	}

	return &DiskvStore{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    flatTransform,
			CacheSizeMax: cacheSize,
		}),
		basePath: basePath,
	}, nil
}

// Keys are few and short, so every file lives directly under the base path.
func flatTransform(string) []string { return []string{} }

// Get returns the value for key or domain.ErrNotFound.
func (s *DiskvStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewNotFoundError("key", key)
		}

		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	return val, nil
}

// Set writes value under key.
func (s *DiskvStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	return nil
}

// Name implements ports.HealthChecker.
func (s *DiskvStore) Name() string { return BackendDiskv }

// Check verifies the base directory is still reachable.
func (s *DiskvStore) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(s.basePath)
	if err != nil {
		return fmt.Errorf("store directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("store path %s is not a directory", s.basePath)
	}

	return nil
}

// Close is a no-op. Every write is already flushed to disk.
func (s *DiskvStore) Close() error { return nil }
