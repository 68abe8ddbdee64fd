package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seqmap/pkg/buildinfo"
	"github.com/matzehuels/seqmap/pkg/cache"
	"github.com/matzehuels/seqmap/pkg/config"
	"github.com/matzehuels/seqmap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "seqmap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Verbose reports whether debug logging is enabled.
func (c *CLI) Verbose() bool {
	return c.Logger.GetLevel() <= log.DebugLevel
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Seqmap draws annotated DNA sequences as linear and circular maps",
		Long: `Seqmap is a CLI tool for laying out and rendering annotated DNA sequences.

Documents hold a sequence, its annotations and a selection. Seqmap edits them
while keeping annotations in place, computes linear or circular maps, and
renders those maps to SVG, PNG or layout JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/seqmap/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.notationCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// config loads the configuration file once per invocation.
func (c *CLI) config() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend)
	c.cfg = &cfg
	return cfg, nil
}

// baseOptions returns pipeline options seeded from the configuration file.
// Command flags are applied on top.
func (c *CLI) baseOptions() (pipeline.Options, error) {
	cfg, err := c.config()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Linear:   cfg.Linear,
		Circular: cfg.Circular,
		Colors:   maps.Clone(cfg.Colors),
		Logger:   c.Logger,
	}, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	store, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache opens the configured cache backend and caps entry lifetimes at
// the configured TTL.
func newCache(ctx context.Context, cfg config.Cache, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}
	store, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return cache.WithTTL(store, cfg.TTL.Duration), nil
}

// openBackend returns the concrete file or Redis cache. A file cache
// without a usable directory degrades to no caching.
func openBackend(ctx context.Context, cfg config.Cache) (cache.Cache, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return rc, nil
	default:
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, fmt.Errorf("open file cache: %w", err)
		}
		return fc, nil
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/seqmap/).
func cacheDir() (string, error) {
	return config.CacheDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// mapFlags holds the layout flags shared by layout, render and view.
// Only flags set on the command line override the configuration file.
type mapFlags struct {
	view        string
	zoom        int
	width       float64
	radius      float64
	translation bool
	hideLabels  bool
}

func (f *mapFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.view, "view", "t", "", "map view: linear, circular (default: by topology)")
	cmd.Flags().IntVarP(&f.zoom, "zoom", "z", 0, "bases per line (linear)")
	cmd.Flags().Float64Var(&f.width, "width", 0, "frame width in pixels")
	cmd.Flags().Float64Var(&f.radius, "radius", 0, "backbone radius (circular)")
	cmd.Flags().BoolVar(&f.translation, "translation", false, "reserve a translation band under CDS features (linear)")
	cmd.Flags().BoolVar(&f.hideLabels, "hide-labels", false, "omit feature captions")
}

func (f *mapFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	changed := cmd.Flags().Changed
	if changed("view") {
		if err := pipeline.ValidateView(f.view); err != nil {
			return err
		}
		opts.View = f.view
	}
	if changed("zoom") {
		opts.Linear.Zoom = f.zoom
	}
	if changed("width") {
		opts.Linear.Width = f.width
		opts.Circular.Width = f.width
		opts.Circular.Height = f.width
	}
	if changed("radius") {
		opts.Circular.Radius = f.radius
	}
	if changed("translation") {
		opts.Linear.ShowTranslation = f.translation
	}
	if changed("hide-labels") {
		opts.Linear.HideLabels = f.hideLabels
		opts.Circular.HideLabels = f.hideLabels
	}
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}
