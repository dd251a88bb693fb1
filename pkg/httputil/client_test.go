package httputil

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/eventline/pkg/cache"
	"github.com/matzehuels/eventline/pkg/errors"
)

func TestClientFetchBytes(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if got := r.Header.Get("User-Agent"); got != "eventline-test" {
			t.Errorf("User-Agent = %q, want eventline-test", got)
		}
		w.Write([]byte("name,date\nA,01.01.2024\n"))
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	c := NewClient(fc, "remote", map[string]string{"User-Agent": "eventline-test"})

	ctx := context.Background()
	body, err := c.FetchBytes(ctx, srv.URL, false)
	if err != nil {
		t.Fatalf("FetchBytes failed: %v", err)
	}
	if string(body) != "name,date\nA,01.01.2024\n" {
		t.Errorf("unexpected body: %q", body)
	}

	// Second fetch is served from cache
	if _, err := c.FetchBytes(ctx, srv.URL, false); err != nil {
		t.Fatalf("cached FetchBytes failed: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("expected 1 network hit, got %d", hits.Load())
	}

	// refresh bypasses the cache
	if _, err := c.FetchBytes(ctx, srv.URL, true); err != nil {
		t.Fatalf("refresh FetchBytes failed: %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("expected 2 network hits after refresh, got %d", hits.Load())
	}
}

func TestClientFetchBytesNoCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("data"))
	}))
	defer srv.Close()

	c := NewClient(nil, "remote", nil)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := c.FetchBytes(ctx, srv.URL, false); err != nil {
			t.Fatalf("FetchBytes failed: %v", err)
		}
	}
	if hits.Load() != 2 {
		t.Errorf("client without cache should always fetch, got %d hits", hits.Load())
	}
}

func TestClientNamespacesKeys(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("data"))
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// Two clients with different namespaces share a backend but not entries.
	a := NewClient(fc, "events", nil)
	b := NewClient(fc, "config", nil)

	ctx := context.Background()
	if _, err := a.FetchBytes(ctx, srv.URL, false); err != nil {
		t.Fatal(err)
	}
	if _, err := b.FetchBytes(ctx, srv.URL, false); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 2 {
		t.Errorf("namespaced clients should not share entries, got %d hits", hits.Load())
	}
}

func TestClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(nil, "remote", nil)
	_, err := c.FetchBytes(context.Background(), srv.URL, false)
	if code := errors.GetCode(err); code != errors.ErrCodeNotFound {
		t.Errorf("expected %s, got %v", errors.ErrCodeNotFound, err)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient(nil, "remote", nil)
	c.backoff = Backoff{Attempts: 3, Delay: time.Millisecond}

	body, err := c.FetchBytes(context.Background(), srv.URL, false)
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("unexpected body: %q", body)
	}
	if hits.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", hits.Load())
	}
}

func TestClientRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "42")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(nil, "remote", nil)
	_, err := c.FetchBytes(context.Background(), srv.URL, false)

	var rl *errors.RateLimitedError
	if !stderrors.As(err, &rl) {
		t.Fatalf("expected RateLimitedError, got %v", err)
	}
	if rl.RetryAfter != 42 {
		t.Errorf("RetryAfter = %d, want 42", rl.RetryAfter)
	}
	if errors.GetCode(err) != errors.ErrCodeRateLimited {
		t.Errorf("expected code %s, got %s", errors.ErrCodeRateLimited, errors.GetCode(err))
	}
}

func TestClientRejectsNonHTTPURL(t *testing.T) {
	c := NewClient(nil, "remote", nil)
	_, err := c.FetchBytes(context.Background(), "ftp://example.com/events.csv", false)
	if code := errors.GetCode(err); code != errors.ErrCodeInvalidInput {
		t.Errorf("expected %s, got %v", errors.ErrCodeInvalidInput, err)
	}
}
