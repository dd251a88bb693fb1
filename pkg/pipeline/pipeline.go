// Package pipeline turns an events CSV into a rendered timeline. It
// chains three stages: parse the rows into validated events, lay the
// events out as scene primitives, and rasterize the scene into the
// requested artifacts. The CLI and the HTTP server both drive their
// work through this package, so every entry point shares one behavior.
//
// # Usage
//
// A [Runner] executes the stages and caches each intermediate result:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "events.csv",
//	    Config:  "config.toml",
//	    Formats: []string{"png"},
//	})
//	if err != nil {
//	    return err
//	}
//	png := result.Artifacts["png"]
//
// The stages also run one at a time. The WithCacheInfo variants
// additionally report whether the result was served from cache:
//
//	events, hit, err := runner.ParseWithCacheInfo(ctx, opts)
//	scene, hit, err := runner.GenerateSceneWithCacheInfo(ctx, events, styles, opts)
//	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, scene, opts)
//
// The package-level Parse, GenerateScene, and Render functions run the
// same stages without a cache.
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/eventline/pkg/cache"
	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/layout"
	"github.com/matzehuels/eventline/pkg/source"
	"github.com/matzehuels/eventline/pkg/style"
	"github.com/matzehuels/eventline/pkg/timeline"
)

// Output formats a render stage can produce.
const (
	FormatPNG  = "png"
	FormatJSON = "json"
)

// DefaultFormat is used when a request names no format.
const DefaultFormat = FormatPNG

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJSON: true,
}

// Options configures a pipeline run. The serializable fields mirror
// the HTTP API's request body; the runtime fields are filled in by the
// runner.
type Options struct {
	// Parse stage.
	Source  string            `json:"source,omitempty"`  // Events CSV: local path or http(s) URL
	Records []timeline.Record `json:"records,omitempty"` // Inline rows (API previews); wins over Source
	Refresh bool              `json:"refresh,omitempty"` // Bypass caches for remote sources

	// Layout stage.
	Config         string        `json:"config,omitempty"` // Style config: local path or http(s) URL
	Styles         *style.Config `json:"styles,omitempty"` // Inline config (API previews); wins over Config
	AdjustOverlaps bool          `json:"adjust_overlaps,omitempty"`

	// Render stage.
	Formats  []string `json:"formats,omitempty"`
	MaxWidth int      `json:"max_width,omitempty"` // Downscale PNG output to at most this width

	// Runtime collaborators, never serialized.
	Logger   *log.Logger      `json:"-"`
	Resolver *source.Resolver `json:"-"`

	// validated records that ValidateAndSetDefaults already ran.
	validated bool `json:"-"`
}

// Result is everything a full pipeline run produced.
type Result struct {
	// Events is the validated event list.
	Events []timeline.Event

	// Scene is the laid-out frame.
	Scene *layout.Scene

	// SceneHash is the content hash of the scene.
	SceneHash string

	// Artifacts holds the rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats reports counts and per-stage timings.
	Stats Stats

	// CacheInfo reports which stages were served from cache.
	CacheInfo CacheInfo
}

// Stats reports counts and per-stage timings for one run.
type Stats struct {
	EventCount     int
	PrimitiveCount int
	ParseTime      time.Duration
	LayoutTime     time.Duration
	RenderTime     time.Duration
}

// CacheInfo reports per-stage cache hits.
type CacheInfo struct {
	ParseHit  bool // event list came from cache
	LayoutHit bool // scene came from cache
	RenderHit bool // every artifact came from cache
}

// ValidateAndSetDefaults prepares the options for a full pipeline run:
// it validates the parse inputs, fills the layout and render defaults,
// and checks the requested formats. Calling it again is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks that the options name an event source.
func (o *Options) ValidateForParse() error {
	if o.Source == "" && len(o.Records) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "events source is required")
	}
	o.setRuntimeDefaults()
	return nil
}

// SetLayoutDefaults fills the defaults the layout stage needs.
func (o *Options) SetLayoutDefaults() {
	o.setRuntimeDefaults()
}

// SetRenderDefaults fills the defaults the render stage needs,
// selecting DefaultFormat when no format was requested.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.setRuntimeDefaults()
}

// ValidateForRender fills the render defaults and checks the render
// inputs, for callers that start from an existing scene.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.MaxWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_width must not be negative, got %d", o.MaxWidth)
	}
	return ValidateFormats(o.Formats)
}

// setRuntimeDefaults fills the non-serialized collaborators.
func (o *Options) setRuntimeDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Resolver == nil {
		o.Resolver = source.NewResolver(nil)
	}
}

// sourceLabel names the event source for logs and hooks.
func (o *Options) sourceLabel() string {
	if len(o.Records) > 0 {
		return "inline"
	}
	return o.Source
}

// ImageKeyOpts returns the cache key options for one rendered format.
func (o *Options) ImageKeyOpts(format string) cache.ImageKeyOpts {
	opts := cache.ImageKeyOpts{Format: format}
	if format == FormatPNG {
		opts.MaxWidth = o.MaxWidth
	}
	return opts
}

// ValidateFormat rejects formats outside ValidFormats.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, json)", format)
	}
	return nil
}

// ValidateFormats rejects a format list containing unknown entries.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// MarshalEvents serializes events as a pretty-printed JSON record
// array, the same shape the events field of a bundle uses.
func MarshalEvents(events []timeline.Event) ([]byte, error) {
	return json.MarshalIndent(timeline.RecordsFromEvents(events), "", "  ")
}

// UnmarshalEvents parses a JSON record array back into validated
// events.
func UnmarshalEvents(data []byte) ([]timeline.Event, error) {
	var records []timeline.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed events JSON")
	}
	return timeline.ParseRecords(records)
}
