package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seqmap/pkg/cache"
	"github.com/matzehuels/seqmap/pkg/document"
	"github.com/matzehuels/seqmap/pkg/edit"
	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/observability"
	"github.com/matzehuels/seqmap/pkg/render/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different documents.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs layout and render for doc with caching.
func (r *Runner) Execute(ctx context.Context, doc *document.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document is required")
	}

	result := &Result{
		Document:  doc,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.SequenceLength = doc.Len()
	result.Stats.AnnotationCount = doc.Annotations.Len()

	// Stage 1: Layout
	layoutStart := time.Now()
	m, docHash, layoutHit, err := r.layout(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.DocumentHash = docHash
	result.Layout = m
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"view", m.View,
		"annotations", result.Stats.AnnotationCount,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, m, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Edit applies ops to a copy of doc. Edits are not cached.
func (r *Runner) Edit(ctx context.Context, doc *document.Document, ops []edit.Op) (*document.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnEditStart(ctx, len(ops))
	start := time.Now()

	out, err := ApplyEdits(doc, ops)
	hooks.OnEditComplete(ctx, len(ops), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("applied edits",
		"ops", len(ops),
		"length", out.Len(),
		"duration", time.Since(start))
	return out, nil
}

// LayoutWithCacheInfo computes the map of doc with caching and returns
// cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, doc *document.Document, opts Options) (sink.Map, bool, error) {
	m, _, hit, err := r.layout(ctx, doc, opts)
	return m, hit, err
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, doc *document.Document, opts Options) (sink.Map, error) {
	m, _, err := r.LayoutWithCacheInfo(ctx, doc, opts)
	return m, err
}

func (r *Runner) layout(ctx context.Context, doc *document.Document, opts Options) (sink.Map, string, bool, error) {
	if doc == nil {
		return sink.Map{}, "", false, errors.New(errors.ErrCodeInvalidInput, "document is required")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return sink.Map{}, "", false, err
	}

	docHash, err := HashDocument(doc)
	if err != nil {
		return sink.Map{}, "", false, fmt.Errorf("hash document: %w", err)
	}
	view := opts.ResolveView(doc)
	cacheKey := r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts(view))
	cacheHooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := sink.ReadJSON(data); err == nil {
				cacheHooks.OnCacheHit(ctx, "layout")
				return cached, docHash, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		cacheHooks.OnCacheMiss(ctx, "layout")
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, view, doc.Annotations.Len())
	start := time.Now()
	m, err := GenerateLayout(doc, opts)
	hooks.OnLayoutComplete(ctx, view, time.Since(start), err)
	if err != nil {
		return sink.Map{}, "", false, err
	}

	if data, err := sink.RenderJSON(m, sink.WithJSONCompact()); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			opts.Logger.Warn("cache write failed", "kind", "layout", "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "layout", len(data))
		}
	}

	return m, docHash, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m sink.Map, doc *document.Document, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Compute cache key from layout data
	layoutData, err := sink.RenderJSON(m, sink.WithJSONCompact())
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	if opts.Bases && doc != nil {
		layoutData = append(layoutData, doc.Sequence()...)
	}
	layoutHash := cache.Hash(layoutData)
	cacheHooks := observability.Cache()

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			cacheHooks.OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderFromLayout(m, doc, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "kind", "artifact", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, m sink.Map, doc *document.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, m, doc, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
