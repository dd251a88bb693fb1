package source

import (
	"context"
	"net/url"
	"strings"
)

// IsRemote reports whether ref is an http(s) URL rather than a local
// file path.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// fetchRemote fetches a URL reference through the retrying, caching
// HTTP client.
func (r *Resolver) fetchRemote(ctx context.Context, ref string, refresh bool) ([]byte, error) {
	return r.client.FetchBytes(ctx, ref, refresh)
}

// refPath extracts the path component of a URL so extension-based
// format detection ignores query strings and fragments.
func refPath(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return u.Path
}
