// Package pkg provides the core libraries for Eventline timeline generation.
//
// # Overview
//
// Eventline turns a flat list of dated events into a rendered timeline image:
// a horizontal spine spanning the date range, with event labels alternating
// above and below it. The pkg directory is organized into four main areas:
//
//  1. [timeline] - Domain types (events, strict date parsing, placement)
//  2. [layout] - Scene construction (scale mapping, primitives, overlap adjustment)
//  3. [render] - Rasterization of scenes into image artifacts
//  4. [pipeline] - Orchestration (parse → layout → render)
//
// # Architecture
//
// The typical data flow through Eventline:
//
//	CSV / JSON records
//	         ↓
//	    [timeline] package (validate rows, parse dates, assign placements)
//	         ↓
//	    [layout] package (scale mapping + primitive generation)
//	         ↓
//	    [render] package (raster drawing)
//	         ↓
//	    PNG/JSON output
//
// # Quick Start
//
// Parse events and render a timeline:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/eventline/pkg/cache"
//	    "github.com/matzehuels/eventline/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	defer runner.Close()
//
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Source:  "events.csv",
//	    Formats: []string{pipeline.FormatPNG},
//	})
//	png := result.Artifacts[pipeline.FormatPNG]
//
// # Main Packages
//
// ## Core Domain Logic
//
// [timeline] - Event model and input validation. Rows are validated field by
// field with row numbers in every error; dates are strict DD.MM.YYYY;
// placements alternate above/below for rows that do not pin one explicitly.
//
// [layout] - Pure scene construction. Maps dates onto horizontal positions
// (5% padding on each side, single-day ranges widened to one day), builds
// drawing primitives back to front (spine, ticks, markers, connectors,
// labels), and optionally nudges overlapping labels apart.
//
// [style] - Style sheet loading and resolution. Partial configs from JSON,
// TOML, or YAML overlay documented defaults at every nesting level; invalid
// values fail eagerly before any layout work happens.
//
// [render] - Renderer interface plus file helpers. [render/raster] draws
// scenes with fogleman/gg and embedded Go fonts, so rendering works without
// any fonts installed on the host.
//
// ## Infrastructure
//
// [pipeline] - Complete generation pipeline (parse → layout → render) used by
// the CLI and the HTTP server. Each stage is cached separately, so editing
// styles does not reparse events and editing events does not rerender
// unchanged scenes.
//
// [cache] - Byte cache with file, Redis, and null implementations plus a
// namespacing wrapper. The file cache shards entries into two-character
// subdirectories by content hash.
//
// [store] - Timeline document persistence with file and MongoDB backends,
// used by the HTTP server for named, shareable timelines.
//
// [source] - Input resolution for local paths and HTTP(S) URLs, built on
// [httputil] for retries and response caching.
//
// [io] - CSV import/export and timeline bundle files.
//
// [errors] - Coded errors shared across all packages. Every failure carries a
// stable machine-readable code (INVALID_DATE_FORMAT, EMPTY_EVENT_SET, ...)
// alongside its human-readable context.
//
// [observability] - Pluggable pipeline and cache hooks for metrics and
// tracing integration.
//
// # Common Workflows
//
// Load a style sheet and overlay it on the defaults:
//
//	cfg, _ := style.Load("config.toml")
//	resolved, _ := cfg.Resolve()
//
// Run the stages separately:
//
//	events, _, _ := runner.ParseWithCacheInfo(ctx, opts)
//	scene, _, _ := runner.GenerateSceneWithCacheInfo(ctx, events, resolved, opts)
//	artifacts, _, _ := runner.RenderWithCacheInfo(ctx, scene, opts)
//
// Persist a named timeline:
//
//	st, _ := store.NewFileStore("data")
//	tl := store.New("Product launch", bundle)
//	_ = st.Save(ctx, tl)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/layout/...      # Specific package
//	go test -run Example          # Examples only
//
// [timeline]: https://pkg.go.dev/github.com/matzehuels/eventline/pkg/timeline
// [layout]: https://pkg.go.dev/github.com/matzehuels/eventline/pkg/layout
// [style]: https://pkg.go.dev/github.com/matzehuels/eventline/pkg/style
// [render]: https://pkg.go.dev/github.com/matzehuels/eventline/pkg/render
// [render/raster]: https://pkg.go.dev/github.com/matzehuels/eventline/pkg/render/raster
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/eventline/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/eventline/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/eventline/pkg/store
// [source]: https://pkg.go.dev/github.com/matzehuels/eventline/pkg/source
// [httputil]: https://pkg.go.dev/github.com/matzehuels/eventline/pkg/httputil
// [io]: https://pkg.go.dev/github.com/matzehuels/eventline/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/eventline/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/eventline/pkg/observability
package pkg
