// Package source resolves event and config references.
//
// A reference is either a local file path or an http(s) URL; every CLI
// command and API handler that accepts a source accepts both forms. The
// Resolver hides the difference: local files are read directly, remote
// references are fetched through the caching HTTP client with retry.
package source

import (
	"bytes"
	"context"

	"github.com/matzehuels/eventline/pkg/buildinfo"
	"github.com/matzehuels/eventline/pkg/cache"
	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/httputil"
	"github.com/matzehuels/eventline/pkg/io"
	"github.com/matzehuels/eventline/pkg/style"
	"github.com/matzehuels/eventline/pkg/timeline"
)

// Resolver loads source references. The zero value is not usable; create
// one with NewResolver.
type Resolver struct {
	client *httputil.Client
}

// NewResolver creates a resolver. Remote response bodies are cached in
// respCache when one is given; pass nil to fetch without response
// caching.
func NewResolver(respCache cache.Cache) *Resolver {
	headers := map[string]string{"User-Agent": "eventline/" + buildinfo.Version}
	return &Resolver{client: httputil.NewClient(respCache, "remote", headers)}
}

// Bytes returns the raw content of ref. refresh bypasses the response
// cache for remote references and is ignored for local files.
func (r *Resolver) Bytes(ctx context.Context, ref string, refresh bool) ([]byte, error) {
	if IsRemote(ref) {
		return r.fetchRemote(ctx, ref, refresh)
	}
	return readLocal(ref)
}

// Records loads timeline rows from a CSV reference.
func (r *Resolver) Records(ctx context.Context, ref string, refresh bool) ([]timeline.Record, error) {
	data, err := r.Bytes(ctx, ref, refresh)
	if err != nil {
		return nil, err
	}
	records, err := io.ReadCSV(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", ref)
	}
	return records, nil
}

// Events loads and validates events from a CSV reference.
func (r *Resolver) Events(ctx context.Context, ref string, refresh bool) ([]timeline.Event, error) {
	records, err := r.Records(ctx, ref, refresh)
	if err != nil {
		return nil, err
	}
	events, err := timeline.ParseRecords(records)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", ref)
	}
	return events, nil
}

// Config loads a partial style config from ref. The format is picked
// from the file extension (JSON, TOML, or YAML); for URLs the extension
// of the path component decides. An empty ref yields an empty config.
func (r *Resolver) Config(ctx context.Context, ref string, refresh bool) (style.Config, error) {
	if ref == "" {
		return style.Config{}, nil
	}
	if !IsRemote(ref) {
		return style.Load(ref)
	}

	format, err := style.FormatForPath(refPath(ref))
	if err != nil {
		return style.Config{}, err
	}
	data, err := r.fetchRemote(ctx, ref, refresh)
	if err != nil {
		return style.Config{}, err
	}
	cfg, err := style.Decode(data, format)
	if err != nil {
		return style.Config{}, errors.Wrap(errors.GetCode(err), err, "%s", ref)
	}
	return cfg, nil
}

// Styles loads a config reference and resolves it over the defaults.
// An empty ref resolves to the default style.
func (r *Resolver) Styles(ctx context.Context, ref string, refresh bool) (style.Resolved, error) {
	cfg, err := r.Config(ctx, ref, refresh)
	if err != nil {
		return style.Resolved{}, err
	}
	return cfg.Resolve()
}
