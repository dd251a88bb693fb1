package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/io"
	"github.com/matzehuels/eventline/pkg/timeline"
)

func testBundle() io.Bundle {
	return io.Bundle{
		Events: []timeline.Record{
			{Name: "Kickoff", Date: "01.02.2024", Position: "above"},
			{Name: "Launch", Date: "01.06.2024"},
		},
	}
}

func TestNew(t *testing.T) {
	tl := New("Roadmap", testBundle())
	if tl.ID == "" {
		t.Error("New should assign an id")
	}
	if tl.Name != "Roadmap" {
		t.Errorf("Name = %q, want Roadmap", tl.Name)
	}
	if tl.CreatedAt.IsZero() || !tl.CreatedAt.Equal(tl.UpdatedAt) {
		t.Errorf("timestamps not initialized: created=%v updated=%v", tl.CreatedAt, tl.UpdatedAt)
	}
	if err := ValidateID(tl.ID); err != nil {
		t.Errorf("generated id should validate: %v", err)
	}

	other := New("Roadmap", testBundle())
	if other.ID == tl.ID {
		t.Error("ids should be unique")
	}
}

func TestTouch(t *testing.T) {
	tl := New("Roadmap", testBundle())
	tl.UpdatedAt = tl.UpdatedAt.Add(-time.Hour)
	before := tl.UpdatedAt
	tl.Touch()
	if !tl.UpdatedAt.After(before) {
		t.Errorf("Touch should advance UpdatedAt, got %v", tl.UpdatedAt)
	}
}

func TestValidateID(t *testing.T) {
	if err := ValidateID("5c0f6f24-81a1-4b2f-8f07-9a3f2d6c1e0b"); err != nil {
		t.Errorf("uuid should validate: %v", err)
	}
	for _, bad := range []string{"", "not-a-uuid", "../../etc/passwd"} {
		err := ValidateID(bad)
		if errors.GetCode(err) != errors.ErrCodeInvalidInput {
			t.Errorf("ValidateID(%q) = %v, want %s", bad, err, errors.ErrCodeInvalidInput)
		}
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()

	tl := New("Roadmap", testBundle())
	if err := st.Save(ctx, tl); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := st.Get(ctx, tl.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != tl.Name || len(got.Bundle.Events) != 2 {
		t.Errorf("round trip lost data: %+v", got)
	}
	if got.Bundle.Events[0] != tl.Bundle.Events[0] {
		t.Errorf("event mismatch: %+v", got.Bundle.Events[0])
	}

	if err := st.Delete(ctx, tl.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := st.Get(ctx, tl.ID); errors.GetCode(err) != errors.ErrCodeTimelineNotFound {
		t.Errorf("Get after Delete = %v, want %s", err, errors.ErrCodeTimelineNotFound)
	}
}

func TestFileStoreNotFound(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()
	id := New("x", io.Bundle{}).ID

	if _, err := st.Get(ctx, id); errors.GetCode(err) != errors.ErrCodeTimelineNotFound {
		t.Errorf("Get unknown id = %v, want %s", err, errors.ErrCodeTimelineNotFound)
	}
	if err := st.Delete(ctx, id); errors.GetCode(err) != errors.ErrCodeTimelineNotFound {
		t.Errorf("Delete unknown id = %v, want %s", err, errors.ErrCodeTimelineNotFound)
	}
}

func TestFileStoreRejectsBadID(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()

	if _, err := st.Get(ctx, "../escape"); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("Get with bad id = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	bad := New("x", io.Bundle{})
	bad.ID = "../escape"
	if err := st.Save(ctx, bad); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("Save with bad id = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestFileStoreListOrder(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	names := []string{"oldest", "middle", "newest"}
	for i, name := range names {
		tl := New(name, testBundle())
		tl.UpdatedAt = base.Add(time.Duration(i) * time.Hour)
		if err := st.Save(ctx, tl); err != nil {
			t.Fatalf("Save %s failed: %v", name, err)
		}
	}

	list, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 timelines, got %d", len(list))
	}
	for i, want := range []string{"newest", "middle", "oldest"} {
		if list[i].Name != want {
			t.Errorf("list[%d].Name = %q, want %q", i, list[i].Name, want)
		}
	}
}

func TestFileStoreListSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()

	if err := st.Save(ctx, New("real", testBundle())); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}

	list, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].Name != "real" {
		t.Errorf("expected only the real document, got %+v", list)
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	st, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	tl := New("durable", testBundle())
	if err := st.Save(ctx, tl); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	st2, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore (second) failed: %v", err)
	}
	got, err := st2.Get(ctx, tl.ID)
	if err != nil {
		t.Fatalf("Get from second instance failed: %v", err)
	}
	if got.Name != "durable" {
		t.Errorf("Name = %q, want durable", got.Name)
	}
}
