package pipeline

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/eventline/pkg/cache"
	"github.com/matzehuels/eventline/pkg/layout"
	"github.com/matzehuels/eventline/pkg/style"
	"github.com/matzehuels/eventline/pkg/timeline"
)

// =============================================================================
// Scene Generation
// =============================================================================

// ResolveStyles produces the resolved style set for opts.
//
// Inline styles win over a config reference; with neither, the defaults
// apply. The adjust-overlaps option is an overlay so it can be flipped
// from a flag without editing the config.
func ResolveStyles(ctx context.Context, opts Options) (style.Resolved, error) {
	var (
		resolved style.Resolved
		err      error
	)
	if opts.Styles != nil {
		resolved, err = opts.Styles.Resolve()
	} else {
		resolved, err = opts.Resolver.Styles(ctx, opts.Config, opts.Refresh)
	}
	if err != nil {
		return style.Resolved{}, err
	}

	if opts.AdjustOverlaps {
		resolved.Visual.AdjustOverlaps = true
	}
	return resolved, nil
}

// GenerateScene lays out the event set with the given styles.
func GenerateScene(events []timeline.Event, styles style.Resolved) (*layout.Scene, error) {
	return layout.Build(events, styles)
}

// =============================================================================
// Hashing Helpers
// =============================================================================

// eventsHash returns the content hash of an event list for cache keys.
func eventsHash(events []timeline.Event) string {
	data, err := json.Marshal(timeline.RecordsFromEvents(events))
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// stylesHash returns the content hash of a resolved style set for cache
// keys. The resolved form hashes stably because every field is concrete.
func stylesHash(styles style.Resolved) string {
	data, err := json.Marshal(styles.Config())
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
