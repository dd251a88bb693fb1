package pipeline

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/io"
	"github.com/matzehuels/eventline/pkg/timeline"
)

// Parse loads and validates the event list for opts.
//
// Inline records are validated directly; a source reference is read
// through the resolver (local file or remote fetch) and parsed as CSV.
// The returned events preserve input order and blank rows are skipped.
func Parse(ctx context.Context, opts Options) ([]timeline.Event, error) {
	data, err := sourceBytes(ctx, opts)
	if err != nil {
		return nil, err
	}
	return parseBytes(data, opts)
}

// sourceBytes returns the raw bytes the event list derives from, used to
// build the content-addressed cache key. For inline records this is
// their canonical JSON; for a reference it is the referenced file.
func sourceBytes(ctx context.Context, opts Options) ([]byte, error) {
	if len(opts.Records) > 0 {
		return json.Marshal(opts.Records)
	}
	return opts.Resolver.Bytes(ctx, opts.Source, opts.Refresh)
}

// parseBytes validates CSV bytes into events. Split from Parse so the
// cached path and the fresh path share one read of the source.
func parseBytes(data []byte, opts Options) ([]timeline.Event, error) {
	if len(opts.Records) > 0 {
		return timeline.ParseRecords(opts.Records)
	}
	records, err := io.ReadCSV(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", opts.Source)
	}
	events, err := timeline.ParseRecords(records)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", opts.Source)
	}
	return events, nil
}
