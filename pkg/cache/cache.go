// Package cache stores computed layouts and rendered artifacts.
//
// Rebuilding a layout is cheap for a small plasmid but not for a long
// annotated sequence rendered repeatedly by the HTTP API, so the pipeline
// keys every result by a hash of the document and the options that shaped
// it.
//
// # Backends
//
//   - [FileCache]: JSON entries under a directory, for the CLI
//   - [RedisCache]: shared cache for multi-instance servers
//   - [NullCache]: never stores anything
//
// # Keys
//
// A [Keyer] derives keys from content hashes. [NewScopedKeyer] prefixes
// every key, which isolates tenants sharing one Redis database.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry. Get reports a miss as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache is a no-op cache.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)       { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}

// ttlCache caps the expiry of every write.
type ttlCache struct {
	Cache
	ttl time.Duration
}

// WithTTL wraps c so that no entry outlives ttl. A ttl of zero or less
// returns c unchanged.
func WithTTL(c Cache, ttl time.Duration) Cache {
	if ttl <= 0 {
		return c
	}
	return &ttlCache{Cache: c, ttl: ttl}
}

func (c *ttlCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 || ttl > c.ttl {
		ttl = c.ttl
	}
	return c.Cache.Set(ctx, key, data, ttl)
}
