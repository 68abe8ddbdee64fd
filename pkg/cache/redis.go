package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces keys written by RedisCache.
const DefaultRedisPrefix = "seqmap:"

// RedisConfig configures a Redis-backed cache.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"` // defaults to DefaultRedisPrefix
}

// RedisCache stores entries in Redis using native key expiry.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to Redis and checks the connection, retrying
// transient failures.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultRedisPrefix
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	err := RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return Retryable(fmt.Errorf("%w: ping %s: %v", ErrNetwork, cfg.Addr, err))
		}
		return nil
	})
	if err != nil {
		client.Close()
		return nil, err
	}
	return &RedisCache{client: client, prefix: cfg.Prefix}, nil
}

// Get returns the entry for key.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get: %v", ErrNetwork, err)
	}
	return data, true, nil
}

// Set stores data under key. A ttl of zero never expires.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrNetwork, err)
	}
	return nil
}

// Delete removes key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("%w: delete: %v", ErrNetwork, err)
	}
	return nil
}

// Clear removes every key under the cache prefix and returns how many were
// removed.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	n := 0
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 256).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return n, fmt.Errorf("%w: delete: %v", ErrNetwork, err)
		}
		n++
	}
	if err := iter.Err(); err != nil {
		return n, fmt.Errorf("%w: scan: %v", ErrNetwork, err)
	}
	return n, nil
}

// Stats counts the keys under the cache prefix and their stored size.
// Redis expires entries itself, so Expired is always zero.
func (c *RedisCache) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 256).Iterator()
	for iter.Next(ctx) {
		n, err := c.client.StrLen(ctx, iter.Val()).Result()
		if err != nil {
			return s, fmt.Errorf("%w: strlen: %v", ErrNetwork, err)
		}
		s.Entries++
		s.Bytes += n
	}
	if err := iter.Err(); err != nil {
		return s, fmt.Errorf("%w: scan: %v", ErrNetwork, err)
	}
	return s, nil
}

// Close closes the connection pool.
func (c *RedisCache) Close() error { return c.client.Close() }

var _ Cache = (*RedisCache)(nil)
