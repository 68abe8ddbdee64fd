// Package cli implements the seqmap command-line interface.
//
// This package provides commands for editing annotated sequence documents,
// computing linear and circular maps, rendering them to SVG, PNG or layout
// JSON, browsing them in the terminal and serving the pipeline over HTTP.
// The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a map and write it as layout JSON
//   - visualize: Render a layout JSON file
//   - render: Layout and render a document in one step
//   - edit: Insert, replace or delete bases while keeping annotations in place
//   - notation: Convert between text and interchange range notation
//   - view: Browse a document in the terminal
//   - serve: Run the HTTP API
//   - cache: Inspect and clear the layout/render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Applied 3 edits (1ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
