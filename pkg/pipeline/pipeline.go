// Package pipeline provides the load → edit → layout → render pipeline for
// seqmap.
//
// The CLI and the HTTP server both go through this package so that a
// document renders the same way from every entry point.
//
// # Architecture
//
// The pipeline has four stages:
//
//  1. Load: read a document file (JSON or YAML)
//  2. Edit: apply sequence edits, adjusting annotations and selection
//  3. Layout: compute a linear or circular map
//  4. Render: write the map as SVG, PNG or layout JSON
//
// Layout and Render are cached through [cache.Cache]; Load and Edit are
// cheap and always run.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	doc, err := pipeline.Load("pUC19.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    View:    "circular",
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
//
// Stages can also run on their own:
//
//	m, err := runner.Layout(ctx, doc, opts)
//	artifacts, err := runner.Render(ctx, m, doc, opts)
package pipeline

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seqmap/pkg/cache"
	"github.com/matzehuels/seqmap/pkg/document"
	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/render/circular"
	"github.com/matzehuels/seqmap/pkg/render/linear"
	"github.com/matzehuels/seqmap/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultScale is the default PNG pixel density.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// View constants. An empty view picks circular for circular documents and
// linear otherwise.
const (
	ViewLinear   = sink.ViewLinear
	ViewCircular = sink.ViewCircular
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ValidViews is the set of supported map views.
var ValidViews = map[string]bool{
	ViewLinear:   true,
	ViewCircular: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	View     string           `json:"view,omitempty"`
	Linear   linear.Options   `json:"linear,omitzero"`
	Circular circular.Options `json:"circular,omitzero"`

	// Render options
	Formats     []string          `json:"formats,omitempty"`
	Colors      map[string]string `json:"colors,omitempty"`
	Scale       float64           `json:"scale,omitempty"` // PNG pixel density
	Bases       bool              `json:"bases,omitempty"` // draw base letters on linear maps
	Interactive bool              `json:"interactive,omitempty"`

	// Refresh skips cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the document that was laid out.
	Document *document.Document

	// DocumentHash is the content hash of the document.
	DocumentHash string

	// Layout is the computed map.
	Layout sink.Map

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SequenceLength  int
	AnnotationCount int
	LayoutTime      time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, keys(ValidFormats))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateView checks that a view is valid. The empty view is accepted and
// resolved per document.
func ValidateView(view string) error {
	if view != "" && !ValidViews[view] {
		return errors.New(errors.ErrCodeInvalidView, "invalid view: %q (must be one of: %s)", view, keys(ValidViews))
	}
	return nil
}

func keys(m map[string]bool) string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all options and applies defaults for the full
// pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	o.Linear.SetDefaults()
	o.Circular.SetDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateView(o.View); err != nil {
		return err
	}
	if err := o.Linear.Validate(); err != nil {
		return err
	}
	return o.Circular.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidView, "scale must not be negative")
	}
	for k := range o.Colors {
		if strings.TrimSpace(k) == "" {
			return errors.New(errors.ErrCodeInvalidInput, "color key cannot be empty")
		}
	}
	return nil
}

// ResolveView returns the view used for doc: the configured one, or the
// document's natural shape when none is set.
func (o *Options) ResolveView(doc *document.Document) string {
	if o.View != "" {
		return o.View
	}
	if doc != nil && doc.Circular {
		return ViewCircular
	}
	return ViewLinear
}

// LayoutKeyOpts returns cache key options for a layout in the given view.
func (o *Options) LayoutKeyOpts(view string) cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{View: view}
	if view == ViewCircular {
		k.Options = o.Circular
	} else {
		k.Options = o.Linear
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Colors: o.Colors, Bases: o.Bases, Interactive: o.Interactive}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
