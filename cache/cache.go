// Package cache memoizes JSON-serializable results in Redis.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is a Redis-backed result cache. A nil *Cache is valid and caches
// nothing.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New connects to the Redis server at addr. An empty addr disables caching
// and returns nil.
func New(addr, password string, db int, ttl time.Duration, logger *slog.Logger) *Cache {
	if addr == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:       addr,
			Password:   password,
			DB:         db,
			MaxRetries: -1,
		}),
		ttl:    ttl,
		logger: logger,
	}
}

// Close releases the Redis connections.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// Memoize returns the cached value stored under key, or calls fn and caches
// its result. Redis failures degrade to calling fn; errors from fn are never
// cached.
func Memoize[T any](ctx context.Context, c *Cache, key string, fn func() (T, error)) (T, error) {
	if c == nil {
		return fn()
	}

	var result T
	cached, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(cached, &result); jsonErr == nil {
			return result, nil
		}
	case err != redis.Nil:
		c.logger.Warn("cache read failed", "key", key, "error", err)
	}

	result, err = fn()
	if err != nil {
		return result, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return result, nil
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
	return result, nil
}
