//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/eventline/pkg/errors"
)

func TestMongoStore_Integration(t *testing.T) {
	uri := os.Getenv("EVENTLINE_MONGO_URI")
	if uri == "" {
		t.Skip("EVENTLINE_MONGO_URI not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := NewMongoStore(ctx, uri)
	if err != nil {
		t.Fatalf("NewMongoStore() error: %v", err)
	}
	defer st.Close()

	tl := New("integration", testBundle())
	if err := st.Save(ctx, tl); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	defer st.Delete(ctx, tl.ID)

	got, err := st.Get(ctx, tl.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != tl.Name || len(got.Bundle.Events) != len(tl.Bundle.Events) {
		t.Errorf("round trip lost data: %+v", got)
	}

	list, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	found := false
	for _, item := range list {
		if item.ID == tl.ID {
			found = true
		}
	}
	if !found {
		t.Error("saved timeline missing from List")
	}

	if err := st.Delete(ctx, tl.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := st.Get(ctx, tl.ID); errors.GetCode(err) != errors.ErrCodeTimelineNotFound {
		t.Errorf("Get after Delete = %v, want %s", err, errors.ErrCodeTimelineNotFound)
	}
}
