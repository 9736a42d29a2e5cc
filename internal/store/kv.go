// Package store persists the small amount of client state that survives a
// restart: the auth token and the theme preference.
package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"termfolio.dev/internal/config"
)

// KV is a durable string key-value store
type KV interface {
	// Get returns the value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds the KV backend selected by configuration
func Open(cfg *config.Config) (KV, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		return NewSQLite(cfg.StorePath)
	case config.StoreRedis:
		opts, err := redisOptions(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return NewRedis(redis.NewClient(opts)), nil
	case config.StoreMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
