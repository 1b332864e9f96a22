package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jcmexdev/greyden-storefront/internal/cart"
	"github.com/jcmexdev/greyden-storefront/internal/pkg/config"
	"github.com/jcmexdev/greyden-storefront/internal/pkg/storage/rediskv"
	"github.com/jcmexdev/greyden-storefront/internal/pkg/storage/sqlite"
)

const redisNamespace = "storefront"

// openStorage returns the durable cart storage selected by STORAGE_DRIVER
// and a function that releases it.
func openStorage(ctx context.Context, cfg *config.Config) (cart.Storage, func() error, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create sqlite directory %q: %w", dir, err)
			}
		}
		repo, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil

	case config.DriverRedis:
		store := rediskv.NewStore(cfg.RedisAddr, redisNamespace)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		return store, store.Close, nil

	case config.DriverMemory:
		return cart.NewMemoryStorage(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// lastWriteReporter is implemented by storages that timestamp their writes.
type lastWriteReporter interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
}

// cartLastSaved reports when the cart under key was last written, if the
// storage records it and a cart is stored.
func cartLastSaved(ctx context.Context, storage cart.Storage, key string) (time.Time, bool) {
	reporter, ok := storage.(lastWriteReporter)
	if !ok {
		return time.Time{}, false
	}
	at, err := reporter.UpdatedAt(ctx, key)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}
