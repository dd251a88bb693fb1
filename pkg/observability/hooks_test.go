package observability

import (
	"context"
	"testing"
	"time"
)

// recordingHooks counts pipeline and cache events. It embeds the Noop
// types so it keeps compiling when the interfaces grow.
type recordingHooks struct {
	NoopPipelineHooks
	NoopCacheHooks
	parseStarts int
	lastSource  string
	hits        int
	misses      int
}

func (r *recordingHooks) OnParseStart(_ context.Context, source string) {
	r.parseStarts++
	r.lastSource = source
}

func (r *recordingHooks) OnCacheHit(context.Context, string)  { r.hits++ }
func (r *recordingHooks) OnCacheMiss(context.Context, string) { r.misses++ }

func TestRegisteredHooksReceiveEvents(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingHooks{}
	SetPipelineHooks(rec)
	SetCacheHooks(rec)

	ctx := context.Background()
	Pipeline().OnParseStart(ctx, "events.csv")
	Pipeline().OnParseStart(ctx, "milestones.csv")
	Cache().OnCacheHit(ctx, "events")
	Cache().OnCacheMiss(ctx, "scene")
	Cache().OnCacheMiss(ctx, "image")

	if rec.parseStarts != 2 {
		t.Errorf("parse starts = %d, want 2", rec.parseStarts)
	}
	if rec.lastSource != "milestones.csv" {
		t.Errorf("last source = %q, want %q", rec.lastSource, "milestones.csv")
	}
	if rec.hits != 1 || rec.misses != 2 {
		t.Errorf("hits/misses = %d/%d, want 1/2", rec.hits, rec.misses)
	}
}

func TestDefaultsAreNoops(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	rec := &recordingHooks{}
	SetPipelineHooks(rec)
	SetCacheHooks(rec)

	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore the no-op pipeline hooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore the no-op cache hooks")
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingHooks{}
	SetPipelineHooks(rec)
	SetPipelineHooks(nil)

	if Pipeline() != PipelineHooks(rec) {
		t.Error("SetPipelineHooks(nil) should keep the previous registration")
	}
}

func TestNoopHooksAcceptAllEvents(t *testing.T) {
	ctx := context.Background()

	var p NoopPipelineHooks
	p.OnParseStart(ctx, "events.csv")
	p.OnParseComplete(ctx, "events.csv", 12, time.Millisecond, nil)
	p.OnLayoutStart(ctx, 12)
	p.OnLayoutComplete(ctx, 49, time.Millisecond, nil)
	p.OnRenderStart(ctx, "png")
	p.OnRenderComplete(ctx, "png", 1024, time.Millisecond, nil)

	var c NoopCacheHooks
	c.OnCacheHit(ctx, "events")
	c.OnCacheMiss(ctx, "scene")
	c.OnCacheSet(ctx, "image", 1024)

	var h NoopHTTPHooks
	h.OnRequest(ctx, "GET", "example.com", "/events.csv")
	h.OnResponse(ctx, "GET", "example.com", "/events.csv", 200, time.Millisecond)
	h.OnError(ctx, "GET", "example.com", "/events.csv", context.DeadlineExceeded)
}
