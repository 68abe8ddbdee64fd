package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) hit=%v err=%v", hit, err)
	}

	if err := c.Set(ctx, "a", []byte("alpha"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "alpha" {
		t.Errorf("Get(a) = %q, %v, %v", data, hit, err)
	}

	if err := c.Set(ctx, "a", []byte("again"), 0); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if data, _, _ := c.Get(ctx, "a"); string(data) != "again" {
		t.Errorf("overwrite gave %q", data)
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete twice: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Delete")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	s, err := c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if s.Entries != 1 || s.Expired != 1 {
		t.Errorf("Stats = %+v, want 1 expired entry", s)
	}
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("old")); !os.IsNotExist(err) {
		t.Error("expired entry not removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil || n != 3 {
		t.Errorf("Clear = %d, %v; want 3", n, err)
	}
	if s, _ := c.Stats(); s.Entries != 0 {
		t.Errorf("entries after Clear = %d", s.Entries)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}

	j1, err := HashJSON(map[string]int{"b": 2, "a": 1})
	if err != nil {
		t.Fatal(err)
	}
	j2, _ := HashJSON(map[string]int{"a": 1, "b": 2})
	if j1 != j2 {
		t.Error("HashJSON should not depend on map order")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{View: "linear", Options: map[string]int{"zoom": 100}})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{View: "linear", Options: map[string]int{"zoom": 120}})
	lk3 := k.LayoutKey("hash123", LayoutKeyOpts{View: "circular", Options: map[string]int{"zoom": 100}})
	if lk1 == lk2 || lk1 == lk3 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}
	if lk1 != k.LayoutKey("hash123", LayoutKeyOpts{View: "linear", Options: map[string]int{"zoom": 100}}) {
		t.Error("LayoutKey should be deterministic")
	}

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Scale: 2})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if ak1[:9] != "artifact:" {
		t.Errorf("ArtifactKey prefix: %s", ak1)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "lab:7:")
	key := scoped.LayoutKey("h", LayoutKeyOpts{View: "linear"})
	if key[:6] != "lab:7:" || key[6:] != NewDefaultKeyer().LayoutKey("h", LayoutKeyOpts{View: "linear"}) {
		t.Errorf("ScopedKeyer LayoutKey unexpected: %s", key)
	}

	key = NewScopedKeyer(nil, "p:").ArtifactKey("h", ArtifactKeyOpts{Format: "svg"})
	if key[:11] != "p:artifact:" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("wrapped error should unwrap to ErrNetwork")
	}
	if IsRetryable(ErrNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()
	plain := errors.New("plain")

	calls := 0
	if err := retry(ctx, 3, time.Millisecond, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err=%v calls=%d", err, calls)
	}

	calls = 0
	if err := retry(ctx, 3, time.Millisecond, func() error { calls++; return plain }); err != plain || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d", err, calls)
	}

	calls = 0
	err := retry(ctx, 3, time.Millisecond, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry then succeed: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = retry(ctx, 3, time.Millisecond, func() error { calls++; return Retryable(ErrNetwork) })
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted: err=%v calls=%d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("SEQMAP_TEST_REDIS")
	if addr == "" {
		t.Skip("SEQMAP_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "seqmap-test:"})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if data, hit, err := c.Get(ctx, "k"); err != nil || !hit || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
	if n, err := c.Clear(ctx); err != nil || n < 1 {
		t.Errorf("Clear = %d, %v", n, err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Clear")
	}
}

func TestNewRedisCacheRequiresAddr(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), RedisConfig{}); err == nil {
		t.Error("expected error for empty address")
	}
}

type recordingCache struct {
	NullCache
	ttl time.Duration
}

func (c *recordingCache) Set(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
	c.ttl = ttl
	return nil
}

func TestWithTTL(t *testing.T) {
	ctx := context.Background()
	inner := &recordingCache{}
	c := WithTTL(inner, time.Hour)

	tests := []struct {
		ttl, want time.Duration
	}{
		{TTLArtifact, time.Hour},
		{time.Minute, time.Minute},
		{0, time.Hour},
	}
	for _, tt := range tests {
		if err := c.Set(ctx, "k", nil, tt.ttl); err != nil {
			t.Fatal(err)
		}
		if inner.ttl != tt.want {
			t.Errorf("Set(ttl=%v) stored ttl %v, want %v", tt.ttl, inner.ttl, tt.want)
		}
	}

	if WithTTL(inner, 0) != Cache(inner) {
		t.Error("WithTTL(0) should return the cache unchanged")
	}
}
