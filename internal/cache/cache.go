package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when the key is absent or the cached value cannot be
// decoded.
var ErrMiss = errors.New("cache: miss")

// Cache is a JSON value cache on Redis with per-entry TTL. A nil client
// degrades to a cache that always misses.
type Cache struct {
	client *redis.Client
}

// New creates a cache backed by the given Redis client.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get loads the key into dst. Returns ErrMiss when absent; decode failures
// also count as misses so a stale schema never breaks reads.
func (c *Cache) Get(ctx context.Context, key string, dst any) error {
	if c.client == nil {
		return ErrMiss
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return ErrMiss
	}
	return nil
}

// Set stores value under key for ttl.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes keys from the cache.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
