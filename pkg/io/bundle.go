package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/style"
	"github.com/matzehuels/eventline/pkg/timeline"
)

// Bundle is the full-fidelity interchange document: the event rows plus
// the partial style configuration they were authored with. It is the
// payload of JSON exports and of saved timeline documents.
type Bundle struct {
	Config *style.Config     `json:"config,omitempty" bson:"config,omitempty"`
	Events []timeline.Record `json:"events" bson:"events"`
}

// ResolveStyles resolves the bundle's partial config over the defaults.
// A bundle without a config resolves to the default style.
func (b Bundle) ResolveStyles() (style.Resolved, error) {
	if b.Config == nil {
		return style.Defaults(), nil
	}
	return b.Config.Resolve()
}

// ReadBundle decodes a bundle document from r. The events array is
// required; a missing config is valid and means default styling. Unknown
// keys are ignored, like everywhere else config JSON is accepted.
func ReadBundle(r io.Reader) (Bundle, error) {
	var b Bundle
	dec := json.NewDecoder(r)
	if err := dec.Decode(&b); err != nil {
		return Bundle{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to decode bundle JSON")
	}
	if b.Events == nil {
		return Bundle{}, errors.New(errors.ErrCodeInvalidInput, "bundle is missing the events array")
	}
	return b, nil
}

// ImportBundle reads a bundle from the JSON file at path.
func ImportBundle(path string) (Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return Bundle{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "failed to open %s", path)
	}
	defer f.Close()
	return ReadBundle(f)
}

// WriteBundle encodes the bundle as indented JSON and writes it to w.
func WriteBundle(w io.Writer, b Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to encode bundle JSON")
	}
	return nil
}

// ExportBundle writes the bundle to a JSON file at path.
func ExportBundle(b Bundle, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "failed to create %s", path)
	}
	if err := WriteBundle(f, b); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to close %s", path)
	}
	return nil
}
