package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// BackendRedis names the Redis cache.
const BackendRedis = "redis"

// Redis stores entries as JSON strings with a key prefix and expiry.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

// NewRedisFromURL connects to the server at rawURL and pings it.
// A value that is not a redis:// URL is used as a plain host:port address.
func NewRedisFromURL(ctx context.Context, rawURL, prefix string, ttl time.Duration) (*Redis, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		opt = &redis.Options{Addr: rawURL}
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, wrapBackend(BackendRedis, "ping", err)
	}
	return NewRedis(client, prefix, ttl), nil
}

func (r *Redis) Get(ctx context.Context, key string) (Entry, bool, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, wrapBackend(BackendRedis, "get", err)
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, false, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	return e, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, e Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return wrapBackend(BackendRedis, "encode", err)
	}
	if err := r.client.Set(ctx, r.prefix+key, raw, r.ttl).Err(); err != nil {
		return wrapBackend(BackendRedis, "set", err)
	}
	return nil
}

func (r *Redis) Backend() string { return BackendRedis }

// Close releases the client.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Ping checks that the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return wrapBackend(BackendRedis, "ping", err)
	}
	return nil
}
