// Package cache provides pluggable byte caching for pipeline stages and
// HTTP responses.
//
// A [Cache] stores opaque byte values under string keys with a TTL. The
// pipeline caches each stage output under a content-addressed key: parsed
// events by source hash, scenes by events and style hash, rendered images
// by scene hash. Because keys change whenever inputs change, TTLs only
// bound disk usage; entries never serve stale content.
//
// Three implementations ship with the module: [FileCache] for the CLI and
// single-host server, [RedisCache] for shared deployments, and
// [NullCache] to disable caching. A [Keyer] builds the keys; wrap one in
// a [ScopedKeyer] to namespace multiple tenants sharing a backend.
package cache

import (
	"context"
	"time"
)

// TTLs per cached stage. Keys are content-addressed, so these control
// space reclamation, not correctness.
const (
	// TTLEvents applies to parsed event lists.
	TTLEvents = 24 * time.Hour

	// TTLScene applies to laid-out scenes.
	TTLScene = 24 * time.Hour

	// TTLImage applies to rendered images, the most expensive stage.
	TTLImage = 7 * 24 * time.Hour
)

// Cache is a byte store with expiration. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get retrieves the value at key. The second return reports whether
	// the key was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer builds cache keys for the cacheable operations. Implementations
// must be deterministic: equal inputs yield equal keys.
type Keyer interface {
	// HTTPKey keys a cached HTTP response body within a namespace.
	HTTPKey(namespace, key string) string

	// EventsKey keys a parsed event list by the hash of its source bytes.
	EventsKey(sourceHash string) string

	// SceneKey keys a laid-out scene by the event list and resolved
	// style hashes.
	SceneKey(eventsHash, styleHash string) string

	// ImageKey keys a rendered image by scene hash and encoding options.
	ImageKey(sceneHash string, opts ImageKeyOpts) string
}

// ImageKeyOpts are the render options that change image bytes for the
// same scene.
type ImageKeyOpts struct {
	Format   string `json:"format"`
	MaxWidth int    `json:"max_width,omitempty"`
}

// DefaultKeyer is the standard key scheme. HTTP keys stay readable for
// debugging; stage keys hash their parts.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// EventsKey generates a key for parsed event lists.
func (k *DefaultKeyer) EventsKey(sourceHash string) string {
	return hashKey("events", sourceHash)
}

// SceneKey generates a key for laid-out scenes.
func (k *DefaultKeyer) SceneKey(eventsHash, styleHash string) string {
	return hashKey("scene", eventsHash, styleHash)
}

// ImageKey generates a key for rendered images.
func (k *DefaultKeyer) ImageKey(sceneHash string, opts ImageKeyOpts) string {
	return hashKey("image", sceneHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
