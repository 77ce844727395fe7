// Package cache stores rendered API responses for a fixed TTL.
//
// Two backends exist: an in-process expirable LRU and Redis. Both expire
// entries on their own; nothing is invalidated explicitly.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"crypto-mood/internal/config"
)

// ErrInvalidEntry is returned when a stored entry cannot be decoded.
var ErrInvalidEntry = errors.New("invalid cache entry")

// Entry is a cached HTTP response.
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Cache is a TTL response store.
type Cache interface {
	// Get returns the entry for key. A miss is (Entry{}, false, nil).
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry) error
	// Backend names the storage, "memory" or "redis".
	Backend() string
}

// FromConfig builds the cache selected by cfg. When Redis is configured but
// unreachable the in-process cache is used instead and a warning is logged.
func FromConfig(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) Cache {
	if logger == nil {
		logger = slog.Default()
	}
	mem := NewMemory(cfg.MaxEntries, cfg.TTL)
	if cfg.Backend() != BackendRedis {
		return mem
	}

	r, err := NewRedisFromURL(ctx, cfg.RedisURL, cfg.KeyPrefix, cfg.TTL)
	if err != nil {
		logger.Warn("redis cache unavailable, using in-process cache",
			slog.String("error", err.Error()))
		return mem
	}
	return r
}

func wrapBackend(backend, op string, err error) error {
	return fmt.Errorf("%s cache %s: %w", backend, op, err)
}
