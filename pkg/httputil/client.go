package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/eventline/pkg/cache"
	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/observability"
)

const requestTimeout = 30 * time.Second

// ResponseTTL bounds how long a fetched body is reused before the URL is
// contacted again.
const ResponseTTL = 24 * time.Hour

// Client fetches remote sources over HTTP GET. Response bodies are kept
// in a [cache.Cache] so repeated generations from the same URL skip the
// network; transient failures are retried with exponential backoff.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	keyer   cache.Keyer
	scope   string
	ttl     time.Duration
	backoff Backoff
	headers map[string]string
}

// NewClient creates a client that caches response bodies in c under the
// given key namespace. Pass nil for c to fetch without caching. Headers
// are applied to every request; pass nil if none are needed.
func NewClient(c cache.Cache, namespace string, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:    &http.Client{Timeout: requestTimeout},
		cache:   c,
		keyer:   cache.NewDefaultKeyer(),
		scope:   namespace,
		ttl:     ResponseTTL,
		backoff: DefaultBackoff,
		headers: headers,
	}
}

// FetchBytes GETs url and returns the response body. The cached body is
// served when present; refresh forces a network fetch. Connection errors
// and 5xx responses are retried per the client's backoff.
//
// Status codes map to error codes: 404 to NOT_FOUND, 429 to a
// RateLimitedError carrying the Retry-After hint, everything else
// non-200 to NETWORK_ERROR.
func (c *Client) FetchBytes(ctx context.Context, url string, refresh bool) ([]byte, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}

	key := c.keyer.HTTPKey(c.scope, url)
	if !refresh {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			return data, nil
		}
	}

	var body []byte
	fetch := func() error {
		data, err := c.get(ctx, url)
		if err != nil {
			return err
		}
		body = data
		return nil
	}
	if err := c.backoff.Do(ctx, fetch); err != nil {
		return nil, err
	}

	_ = c.cache.Set(ctx, key, body, c.ttl)
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request for %s", url)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	obs := observability.HTTP()
	obs.OnRequest(ctx, http.MethodGet, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		obs.OnError(ctx, http.MethodGet, req.URL.Host, req.URL.Path, err)
		return nil, Transient(errors.Wrap(errors.ErrCodeNetwork, err, "request to %s failed", url))
	}
	defer resp.Body.Close()
	obs.OnResponse(ctx, http.MethodGet, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(url, resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Transient(errors.Wrap(errors.ErrCodeNetwork, err, "reading %s failed", url))
	}
	return data, nil
}

func checkStatus(url string, resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s not found (status 404)", url)
	case code == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &errors.RateLimitedError{
			RetryAfter: retryAfter,
			Message:    "rate limited by " + resp.Request.URL.Host,
		}
	case code >= 500:
		return Transient(errors.New(errors.ErrCodeNetwork, "%s returned status %d", url, code))
	default:
		return errors.New(errors.ErrCodeNetwork, "%s returned status %d", url, code)
	}
}
