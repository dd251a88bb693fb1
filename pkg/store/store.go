// Package store persists saved timelines.
//
// A saved timeline is a named document holding a complete bundle (style
// config plus event rows) so web users can keep more than one timeline
// per data directory. Two backends implement the Store interface:
//   - file: JSON documents in a local directory (single-host default)
//   - mongo: MongoDB collection for multi-instance deployments
//
// # Usage
//
// Create a store:
//
//	// Single host
//	st, err := store.NewFileStore("")  // Uses ~/.config/eventline/timelines/
//
//	// Multi-instance
//	st, err := store.NewMongoStore(ctx, "mongodb://localhost:27017")
//
// Manage timelines:
//
//	tl := store.New("Product launch", bundle)
//	if err := st.Save(ctx, tl); err != nil {
//	    return err
//	}
//
//	tl, err := st.Get(ctx, id)
//	if errors.Is(err, errors.ErrCodeTimelineNotFound) {
//	    // Unknown id
//	}
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/io"
)

// Timeline is a saved timeline document.
type Timeline struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Bundle    io.Bundle `json:"bundle" bson:"bundle"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Touch bumps UpdatedAt to now.
func (t *Timeline) Touch() {
	t.UpdatedAt = time.Now().UTC()
}

// New creates a timeline document with a fresh id and timestamps.
func New(name string, bundle io.Bundle) Timeline {
	now := time.Now().UTC()
	return Timeline{
		ID:        uuid.NewString(),
		Name:      name,
		Bundle:    bundle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store is the interface for timeline storage backends.
type Store interface {
	// List returns all stored timelines, most recently updated first.
	List(ctx context.Context) ([]Timeline, error)

	// Get retrieves a timeline by id.
	// Returns ErrCodeTimelineNotFound for unknown ids.
	Get(ctx context.Context, id string) (Timeline, error)

	// Save stores a timeline, replacing any existing document with the
	// same id.
	Save(ctx context.Context, t Timeline) error

	// Delete removes a timeline.
	// Returns ErrCodeTimelineNotFound for unknown ids.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// ValidateID checks that id is a well-formed timeline id. Ids are
// validated before they reach the filesystem or a database query.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid timeline id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeTimelineNotFound, "timeline %s not found", id)
}
