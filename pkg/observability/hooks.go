// Package observability lets embedding applications tap into pipeline,
// cache, and HTTP activity without coupling the library to any metrics
// or tracing backend.
//
// The library reports events through package-level hook registries that
// default to no-ops. An application swaps them in once at startup:
//
//	func main() {
//	    observability.SetPipelineHooks(prometheusHooks{})
//	    observability.SetCacheHooks(prometheusHooks{})
//	    // ...
//	}
//
// and every later pipeline run, cache operation, and remote fetch calls
// into the registered implementation. Custom implementations can embed
// the corresponding Noop type to stay compatible when an interface
// grows a method.
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks observes the parse, layout, and render stages. Each
// Start call is followed by exactly one Complete call; err is non-nil
// when the stage failed and the counts then describe partial work.
type PipelineHooks interface {
	OnParseStart(ctx context.Context, source string)
	OnParseComplete(ctx context.Context, source string, eventCount int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, eventCount int)
	OnLayoutComplete(ctx context.Context, primitiveCount int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// CacheHooks observes lookups and writes on the artifact cache. The
// keyType is the artifact kind ("events", "scene", "image"), not the
// cache key itself.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks observes outgoing requests made while resolving remote
// event sources. OnError fires for transport failures; HTTP error
// statuses arrive through OnResponse like any other response.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopPipelineHooks discards all pipeline events.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, string)                                {}
func (NoopPipelineHooks) OnParseComplete(context.Context, string, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                                  {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)         {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks discards all cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks discards all HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// hookPoint guards a single hook registration for concurrent use.
type hookPoint[T any] struct {
	mu sync.RWMutex
	v  T
}

func (p *hookPoint[T]) load() T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.v
}

func (p *hookPoint[T]) store(v T) {
	p.mu.Lock()
	p.v = v
	p.mu.Unlock()
}

var (
	pipelineHooks = hookPoint[PipelineHooks]{v: NoopPipelineHooks{}}
	cacheHooks    = hookPoint[CacheHooks]{v: NoopCacheHooks{}}
	httpHooks     = hookPoint[HTTPHooks]{v: NoopHTTPHooks{}}
)

// SetPipelineHooks installs h as the receiver for pipeline events.
// Call it once at startup, before running any pipeline; a nil h is
// ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineHooks.store(h)
	}
}

// SetCacheHooks installs h as the receiver for cache events. A nil h
// is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.store(h)
	}
}

// SetHTTPHooks installs h as the receiver for HTTP events. A nil h is
// ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpHooks.store(h)
	}
}

// Pipeline returns the registered pipeline hooks, NoopPipelineHooks
// unless an application installed its own.
func Pipeline() PipelineHooks {
	return pipelineHooks.load()
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	return cacheHooks.load()
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	return httpHooks.load()
}

// Reset restores the no-op defaults for every category. Tests use it
// to undo registrations they made.
func Reset() {
	pipelineHooks.store(NoopPipelineHooks{})
	cacheHooks.store(NoopCacheHooks{})
	httpHooks.store(NoopHTTPHooks{})
}
