// Package config loads seqmap's TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/seqmap/config.toml (falling back to
// ~/.config/seqmap/config.toml) unless a path is given explicitly:
//
//	[linear]
//	zoom = 120
//	show_translation = true
//
//	[circular]
//	radius = 260
//
//	[colors]
//	CDS = "#f4b183"
//	background = "#fafafa"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "12h"
//
//	[server]
//	addr = ":8080"
//
// Zero values mean "use the default", so a partial file only overrides what
// it names. Unknown keys are rejected to catch typos.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	serrors "github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/render/circular"
	"github.com/matzehuels/seqmap/pkg/render/linear"
)

const appName = "seqmap"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the parsed configuration file.
type Config struct {
	Linear   linear.Options    `toml:"linear"`
	Circular circular.Options  `toml:"circular"`
	Colors   map[string]string `toml:"colors"`
	Cache    Cache             `toml:"cache"`
	Server   Server            `toml:"server"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	TTL           Duration `toml:"ttl"`
}

// Server configures `seqmap serve`.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a Go duration string ("90m").
type Duration struct{ time.Duration }

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Cache:  Cache{Backend: BackendFile},
		Server: Server{Addr: ":8080"},
	}
}

// Dir returns seqmap's configuration directory.
func Dir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// DefaultPath returns the path of the default configuration file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the default directory of the file cache.
func CacheDir() (string, error) {
	if d := os.Getenv("XDG_CACHE_HOME"); d != "" {
		return filepath.Join(d, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the file at path. An empty path loads the default file and
// falls back to Default when it does not exist; an explicit path must
// exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}
	cfg, err := LoadFile(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads and validates a configuration file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, serrors.Wrap(serrors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return Config{}, serrors.Wrap(serrors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, serrors.Wrap(serrors.GetCode(err), err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML text on top of Default.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return Config{}, serrors.New(serrors.ErrCodeInvalidFormat, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Linear.Validate(); err != nil {
		return err
	}
	if err := c.Circular.Validate(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case "", BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return serrors.New(serrors.ErrCodeInvalidInput, "cache backend redis needs redis_addr")
		}
	default:
		return serrors.New(serrors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return serrors.New(serrors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	for k := range c.Colors {
		if err := serrors.ValidateAnnotationType(k); err != nil {
			return serrors.Wrap(serrors.ErrCodeInvalidInput, err, "colors")
		}
	}
	return nil
}
