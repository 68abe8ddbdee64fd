package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqmap/pkg/pipeline"
	"github.com/matzehuels/seqmap/pkg/render/sink"
)

// layoutCommand creates the layout command for computing sequence maps.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		flags   mapFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [document]",
		Short: "Compute a sequence map from a document",
		Long: `Compute a sequence map from a document.

The layout command takes a document (JSON or YAML) and computes a linear or
circular map of its annotations. The output is a layout.json file (same format
as 'render -f json') that can be rendered to SVG or PNG using the 'visualize'
command.

Circular documents default to the circular view (-t circular) and linear
documents to the linear view (-t linear).

Results are cached for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.baseOptions()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, &opts); err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached layout exists")
	flags.register(cmd)

	return cmd
}

// runLayout loads the document, computes the map, and writes layout JSON.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	doc, err := pipeline.Load(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	view := opts.ResolveView(doc)
	spinner := startSpinner(ctx, os.Stderr, fmt.Sprintf("Computing %s layout...", view))

	m, cacheHit, err := runner.LayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := sink.RenderJSON(m, sink.WithJSONTheme(sink.DefaultTheme().With(opts.Colors)))
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(doc.Len(), doc.Annotations.Len(), cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
