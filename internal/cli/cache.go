package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seqmap/pkg/cache"
	"github.com/matzehuels/seqmap/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and render cache",
	}

	cmd.AddCommand(c.cacheStatsCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheStatsCommand creates the "cache stats" subcommand.
func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache backend, entry count and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			store, err := openBackend(cmd.Context(), cfg.Cache)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, location, err := cacheStats(cmd.Context(), store, cfg.Cache)
			if err != nil {
				return err
			}
			fmt.Println(statsTable(cfg.Cache, location, stats))
			return nil
		},
	}
}

// cacheStats reads the statistics of a concrete backend.
func cacheStats(ctx context.Context, store cache.Cache, cfg config.Cache) (cache.Stats, string, error) {
	switch s := store.(type) {
	case *cache.FileCache:
		stats, err := s.Stats()
		return stats, s.Dir(), err
	case *cache.RedisCache:
		stats, err := s.Stats(ctx)
		return stats, cfg.RedisAddr, err
	default:
		return cache.Stats{}, "-", nil
	}
}

func statsTable(cfg config.Cache, location string, s cache.Stats) string {
	backend := cfg.Backend
	if backend == "" {
		backend = config.BackendFile
	}
	ttl := "per entry"
	if cfg.TTL.Duration > 0 {
		ttl = cfg.TTL.String()
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Backend", "Location", "Entries", "Size", "Expired", "TTL").
		Row(backend, location, fmt.Sprint(s.Entries), formatBytes(s.Bytes), fmt.Sprint(s.Expired), ttl).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col >= 2 && col <= 4 {
				return StyleNumber
			}
			return StyleValue
		})
	return t.Render()
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			store, err := openBackend(cmd.Context(), cfg.Cache)
			if err != nil {
				return err
			}
			defer store.Close()

			var n int
			switch s := store.(type) {
			case *cache.FileCache:
				n, err = s.Clear()
				if err == nil {
					printSuccess("Cleared %d cached entries", n)
					printDetail("Directory: %s", s.Dir())
				}
			case *cache.RedisCache:
				n, err = s.Clear(cmd.Context())
				if err == nil {
					printSuccess("Cleared %s", plural(n, "cached key"))
					printDetail("Redis: %s", cfg.Cache.RedisAddr)
				}
			default:
				printInfo("Caching is disabled")
			}
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == config.BackendRedis {
				printWarning("Cache backend is redis (%s); no directory is used", cfg.Cache.RedisAddr)
				return nil
			}
			dir := cfg.Cache.Dir
			if dir == "" {
				if dir, err = cacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// formatBytes prints n with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
