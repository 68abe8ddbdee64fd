package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqmap/pkg/document"
	"github.com/matzehuels/seqmap/pkg/pipeline"
	"github.com/matzehuels/seqmap/pkg/render/sink"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		out     renderFlags
		docPath string
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout",
		Long: `Render a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG or PNG. The layout contains all positioning information, so
this step is purely about drawing. Sequence letters (--bases) need the
original document, given with --document.

Results are cached for faster subsequent runs.

Use 'render' as a shortcut to go directly from a document to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.baseOptions()
			if err != nil {
				return err
			}
			if err := out.apply(&opts); err != nil {
				return err
			}
			var doc *document.Document
			if docPath != "" {
				if doc, err = pipeline.Load(docPath); err != nil {
					return fmt.Errorf("load document %s: %w", docPath, err)
				}
			}
			return c.runVisualize(cmd.Context(), args[0], doc, opts, out.output, out.noCache)
		},
	}

	out.register(cmd)
	cmd.Flags().StringVar(&docPath, "document", "", "source document, needed for --bases")

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, doc *document.Document, opts pipeline.Options, output string, noCache bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read layout %s: %w", input, err)
	}
	m, err := sink.ReadJSON(data)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	if opts.Bases && doc == nil {
		c.Logger.Warn("--bases needs --document; drawing without sequence letters")
		opts.Bases = false
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := startSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s map...", m.View))

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, m, doc, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	params := artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
	}
	if doc != nil {
		params.length = doc.Len()
		params.annotations = doc.Annotations.Len()
	}
	return writeArtifacts(params)
}
