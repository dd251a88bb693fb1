package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/eventline/pkg/cache"
	"github.com/matzehuels/eventline/pkg/layout"
	"github.com/matzehuels/eventline/pkg/observability"
	"github.com/matzehuels/eventline/pkg/source"
	"github.com/matzehuels/eventline/pkg/style"
	"github.com/matzehuels/eventline/pkg/timeline"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	resolver *source.Resolver
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, the default keyer is used.
// If cache is nil, caching is disabled.
// Remote sources are fetched through a resolver sharing the same cache
// backend, so HTTP response caching follows the runner's cache choice.
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
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		resolver: source.NewResolver(c),
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyRuntime(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	events, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Events = events
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.EventCount = len(events)
	result.CacheInfo.ParseHit = parseHit

	r.Logger.Info("parsed events",
		"source", opts.sourceLabel(),
		"events", len(events),
		"duration", result.Stats.ParseTime)

	// Styles feed the layout stage and its cache key
	styles, err := ResolveStyles(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("styles: %w", err)
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	scene, layoutHit, err := r.GenerateSceneWithCacheInfo(ctx, events, styles, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Scene = scene
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.PrimitiveCount = len(scene.Primitives)
	result.CacheInfo.LayoutHit = layoutHit

	// Compute scene hash for cache keys and API responses
	if sceneData, err := layout.MarshalScene(*scene); err == nil {
		result.SceneHash = cache.Hash(sceneData)
	}

	r.Logger.Info("computed layout",
		"primitives", len(scene.Primitives),
		"size", fmt.Sprintf("%dx%d", scene.Width, scene.Height),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, scene, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo loads events with caching and returns cache hit info.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (events []timeline.Event, hit bool, err error) {
	r.applyRuntime(&opts)
	if err := opts.ValidateForParse(); err != nil {
		return nil, false, err
	}

	obs := observability.Pipeline()
	obs.OnParseStart(ctx, opts.sourceLabel())
	start := time.Now()
	defer func() {
		obs.OnParseComplete(ctx, opts.sourceLabel(), len(events), time.Since(start), err)
	}()

	// The key is content-addressed so edits to a local file are never
	// served stale.
	raw, err := sourceBytes(ctx, opts)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.EventsKey(cache.Hash(raw))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, cacheKey); err == nil && ok {
			if cached, err := UnmarshalEvents(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "events")
				return cached, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "events")
	}

	// Parse
	events, err = parseBytes(raw, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if !opts.Refresh {
		if data, err := MarshalEvents(events); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLEvents)
			observability.Cache().OnCacheSet(ctx, "events", len(data))
		}
	}

	return events, false, nil // Cache miss
}

// Parse is a convenience wrapper that calls ParseWithCacheInfo and discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) ([]timeline.Event, error) {
	events, _, err := r.ParseWithCacheInfo(ctx, opts)
	return events, err
}

// GenerateSceneWithCacheInfo lays out a scene with caching and returns cache hit info.
func (r *Runner) GenerateSceneWithCacheInfo(ctx context.Context, events []timeline.Event, styles style.Resolved, opts Options) (scene *layout.Scene, hit bool, err error) {
	r.applyRuntime(&opts)
	opts.SetLayoutDefaults()

	obs := observability.Pipeline()
	obs.OnLayoutStart(ctx, len(events))
	start := time.Now()
	defer func() {
		primitives := 0
		if scene != nil {
			primitives = len(scene.Primitives)
		}
		obs.OnLayoutComplete(ctx, primitives, time.Since(start), err)
	}()

	cacheKey := r.Keyer.SceneKey(eventsHash(events), stylesHash(styles))

	// Try cache first
	if data, ok, err := r.Cache.Get(ctx, cacheKey); err == nil && ok {
		if cached, err := layout.UnmarshalScene(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "scene")
			return &cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "scene")

	// Generate scene
	scene, err = GenerateScene(events, styles)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := layout.MarshalScene(*scene); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLScene)
		observability.Cache().OnCacheSet(ctx, "scene", len(data))
	}

	return scene, false, nil // Cache miss
}

// GenerateScene is a convenience wrapper that calls GenerateSceneWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateScene(ctx context.Context, events []timeline.Event, styles style.Resolved, opts Options) (*layout.Scene, error) {
	scene, _, err := r.GenerateSceneWithCacheInfo(ctx, events, styles, opts)
	return scene, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scene *layout.Scene, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	r.applyRuntime(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	obs := observability.Pipeline()
	formats := strings.Join(opts.Formats, ",")
	obs.OnRenderStart(ctx, formats)
	start := time.Now()
	defer func() {
		total := 0
		for _, data := range artifacts {
			total += len(data)
		}
		obs.OnRenderComplete(ctx, formats, total, time.Since(start), err)
	}()

	// Compute cache key from scene content
	sceneData, err := layout.MarshalScene(*scene)
	if err != nil {
		return nil, false, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	sceneHash := cache.Hash(sceneData)

	// Try to get all formats from cache
	allCached := true
	cached := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ImageKey(sceneHash, opts.ImageKeyOpts(format))
		if data, ok, err := r.Cache.Get(ctx, cacheKey); err == nil && ok {
			cached[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(cached) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "image")
		return cached, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "image")

	// Render all formats
	rendered, err := Render(scene, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ImageKey(sceneHash, opts.ImageKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLImage)
		observability.Cache().OnCacheSet(ctx, "image", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, scene *layout.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, scene, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyRuntime fills the runner-owned collaborators on options where the
// caller left them unset. It must run before any Validate call so the
// uncached package-level defaults do not win over the runner's cache.
func (r *Runner) applyRuntime(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if opts.Resolver == nil {
		opts.Resolver = r.resolver
	}
}
