package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileStore keeps timeline documents as JSON files in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based timeline store.
// If baseDir is empty, defaults to ~/.config/eventline/timelines/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "eventline", "timelines")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create timeline dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) docPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) List(ctx context.Context) ([]Timeline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read timeline dir: %w", err)
	}

	var timelines []Timeline
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var t Timeline
		if err := json.Unmarshal(data, &t); err != nil {
			// Foreign or corrupt files in the directory are skipped,
			// not fatal.
			continue
		}
		timelines = append(timelines, t)
	}

	sort.Slice(timelines, func(i, j int) bool {
		return timelines[i].UpdatedAt.After(timelines[j].UpdatedAt)
	})
	return timelines, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (Timeline, error) {
	if err := ValidateID(id); err != nil {
		return Timeline{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.docPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return Timeline{}, notFound(id)
		}
		return Timeline{}, fmt.Errorf("read timeline file: %w", err)
	}

	var t Timeline
	if err := json.Unmarshal(data, &t); err != nil {
		return Timeline{}, fmt.Errorf("parse timeline %s: %w", id, err)
	}
	return t, nil
}

func (s *FileStore) Save(ctx context.Context, t Timeline) error {
	if err := ValidateID(t.ID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal timeline: %w", err)
	}
	if err := os.WriteFile(s.docPath(t.ID), data, 0600); err != nil {
		return fmt.Errorf("write timeline file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.docPath(id)); err != nil {
		if os.IsNotExist(err) {
			return notFound(id)
		}
		return fmt.Errorf("remove timeline file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for timeline documents.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
