// Package cache is an optional Redis read-through cache for small reference
// lists (topics, gallery images, avatars). A nil *Cache is valid and behaves
// as an always-missing cache, so callers never branch on whether Redis is
// configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "newsboard:"

var lookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "newsboard_cache_lookups_total",
		Help: "Reference-list cache lookups by result (hit, miss, error).",
	},
	[]string{"result"},
)

// Cache wraps a Redis client with JSON helpers.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to the Redis server at url (redis://host:port/db) and verifies
// the connection. ttl applies to every entry written through the cache.
func New(ctx context.Context, url string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return NewWithClient(client, ttl), nil
}

// NewWithClient wraps an existing client without pinging it.
func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// GetJSON looks up key and unmarshals it into dest. It reports whether the
// key was found.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	b, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		lookups.WithLabelValues("miss").Inc()
		return false, nil
	}
	if err != nil {
		lookups.WithLabelValues("error").Inc()
		return false, fmt.Errorf("reading cache key %s: %w", key, err)
	}
	if err := json.Unmarshal(b, dest); err != nil {
		lookups.WithLabelValues("error").Inc()
		return false, fmt.Errorf("decoding cache key %s: %w", key, err)
	}
	lookups.WithLabelValues("hit").Inc()
	return true, nil
}

// SetJSON marshals v and stores it under key with the cache TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding cache key %s: %w", key, err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing cache key %s: %w", key, err)
	}
	return nil
}

// Invalidate removes keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}
	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("invalidating cache keys: %w", err)
	}
	return nil
}

// Aside returns the cached value of key in dest, or calls fetch to fill dest
// and stores the result. Cache failures are logged and fall through to
// fetch; they never fail the read.
func Aside[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error)) (T, error) {
	var v T
	found, err := c.GetJSON(ctx, key, &v)
	if err != nil {
		slog.Warn("cache read failed, falling back to database", "key", key, "error", err)
	}
	if found {
		return v, nil
	}

	v, err = fetch(ctx)
	if err != nil {
		return v, err
	}

	if err := c.SetJSON(ctx, key, v); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
	return v, nil
}
