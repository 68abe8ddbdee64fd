package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqmap/pkg/pipeline"
)

// renderFlags holds the output flags shared by render and visualize.
type renderFlags struct {
	formats     string
	output      string
	scale       float64
	bases       bool
	interactive bool
	noCache     bool
	refresh     bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "pixel density of PNG output")
	cmd.Flags().BoolVar(&f.bases, "bases", false, "draw sequence letters (linear)")
	cmd.Flags().BoolVar(&f.interactive, "interactive", false, "add hover titles and data attributes to SVG")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when cached output exists")
}

func (f *renderFlags) apply(opts *pipeline.Options) error {
	opts.Formats = parseFormats(f.formats)
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	opts.Scale = f.scale
	opts.Bases = f.bases
	opts.Interactive = f.interactive
	opts.Refresh = f.refresh
	return nil
}

// renderCommand creates the render command that goes straight from a
// document to visual output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		out   renderFlags
		flags mapFlags
	)

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Lay out and render a document in one step",
		Long: `Lay out and render a document in one step.

The render command combines 'layout' and 'visualize': it computes the map of
a document and writes it as SVG, PNG or layout JSON. Several formats can be
requested at once (-f svg,png); each is written next to the base path.

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
			if err := out.apply(&opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, out.output, out.noCache)
		},
	}

	out.register(cmd)
	flags.register(cmd)

	return cmd
}

// runRender loads the document and runs the full pipeline.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	doc, err := pipeline.Load(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := startSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s map...", opts.ResolveView(doc)))

	result, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts:   result.Artifacts,
		formats:     opts.Formats,
		input:       input,
		output:      output,
		length:      result.Stats.SequenceLength,
		annotations: result.Stats.AnnotationCount,
		cacheHit:    result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	})
}

// =============================================================================
// Output
// =============================================================================

type artifactWriteParams struct {
	artifacts   map[string][]byte
	formats     []string
	input       string
	output      string
	length      int
	annotations int
	cacheHit    bool
}

// writeArtifacts writes each rendered format to disk. A single format goes
// to output as given; several formats share a base path and get their
// format as extension.
func writeArtifacts(p artifactWriteParams) error {
	var paths []string
	if len(p.formats) == 1 && p.output != "" {
		format := p.formats[0]
		if err := os.WriteFile(p.output, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", p.output, err)
		}
		paths = append(paths, p.output)
	} else {
		base := basePath(p.output, p.input)
		for _, format := range p.formats {
			path := base + "." + format
			if format == pipeline.FormatJSON {
				path = base + ".layout.json"
			}
			if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			paths = append(paths, path)
		}
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	if p.length > 0 {
		printStats(p.length, p.annotations, p.cacheHit)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// Known format extensions and the .layout suffix are stripped.
func basePath(output, input string) string {
	if output == "" {
		output = input
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] || ext == ".yaml" || ext == ".yml" {
		output = strings.TrimSuffix(output, ext)
	}
	return strings.TrimSuffix(output, ".layout")
}
