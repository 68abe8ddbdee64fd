package cache

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache stores each entry as a JSON file holding the data and its
// expiry. Files are spread over 256 subdirectories by key hash.
type FileCache struct {
	dir string
}

// NewFileCache creates a file cache in dir, creating the directory if
// needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

type fileEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

func (e fileEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Get returns the entry for key. Corrupt and expired entries are removed and
// reported as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	p := c.path(key)
	raw, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var e fileEntry
	if err := json.Unmarshal(raw, &e); err != nil || e.expired(time.Now()) {
		_ = os.Remove(p)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set stores data under key. A ttl of zero never expires. The entry is
// written to a temporary file and renamed so readers never see a partial
// entry.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	e := fileEntry{Data: data}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	p := c.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// Delete removes key. Missing keys are not an error.
func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close does nothing for file cache.
func (c *FileCache) Close() error { return nil }

// Stats summarizes the cache directory.
type Stats struct {
	Entries int
	Bytes   int64
	Expired int
}

// Stats walks the cache directory.
func (c *FileCache) Stats() (Stats, error) {
	var s Stats
	now := time.Now()
	err := c.walk(func(p string, info fs.FileInfo) error {
		s.Entries++
		s.Bytes += info.Size()
		raw, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		var e fileEntry
		if json.Unmarshal(raw, &e) != nil || e.expired(now) {
			s.Expired++
		}
		return nil
	})
	return s, err
}

// Clear removes every entry and returns how many were removed.
func (c *FileCache) Clear() (int, error) {
	n := 0
	err := c.walk(func(p string, _ fs.FileInfo) error {
		if err := os.Remove(p); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

func (c *FileCache) walk(fn func(string, fs.FileInfo) error) error {
	return filepath.WalkDir(c.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".json") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return fn(p, info)
	})
}

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
