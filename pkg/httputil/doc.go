// Package httputil provides the HTTP client behind remote timeline
// sources.
//
// # Overview
//
// Event and config references may be http(s):// URLs. This package turns
// those into cached, retried GETs:
//
//   - [Client]: GET with response caching and status-code mapping
//   - [Backoff]: Exponential backoff for transient failures
//   - [Transient]: Marker separating retryable from permanent errors
//
// # Caching
//
// The client stores response bodies in a [cache.Cache] keyed by namespace
// and URL, so regenerating a timeline from the same URL skips the network
// until the entry expires ([ResponseTTL], 24 hours). Any cache backend
// works: the CLI hands the client its file cache, the server can hand it
// Redis.
//
//	fc, _ := cache.NewFileCache(dir)
//	client := httputil.NewClient(fc, "remote", nil)
//	body, err := client.FetchBytes(ctx, url, false)
//
// Passing refresh=true bypasses the cached body and refetches.
//
// # Retry
//
// Connection errors and 5xx responses are wrapped with [Transient] and
// retried per [DefaultBackoff] (3 attempts, 1s doubling delay). 404 and
// 429 are permanent within one invocation: retrying them would not help,
// so they surface immediately with NOT_FOUND and RATE_LIMITED codes.
package httputil
