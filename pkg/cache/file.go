package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// fileCache stores entries as JSON files under a root directory, one
// file per key. Keys are hashed and sharded into two-character
// subdirectories so no single directory grows unbounded.
type fileCache struct {
	root string
}

// NewFileCache creates a file-backed cache rooted at dir, creating the
// directory if needed. It serves the CLI and the single-host server;
// concurrent processes can share one root because entries are written
// atomically.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &fileCache{root: dir}, nil
}

// fileEntry is the on-disk envelope. Expires holds nanoseconds since
// the epoch; zero means the entry never expires.
type fileEntry struct {
	Payload []byte `json:"payload"`
	Expires int64  `json:"expires,omitempty"`
}

func (c *fileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// Corrupt entries read as a miss, not an error.
		_ = os.Remove(path)
		return nil, false, nil
	}
	if entry.Expires > 0 && time.Now().UnixNano() > entry.Expires {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return entry.Payload, true, nil
}

func (c *fileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Payload: data}
	if ttl > 0 {
		entry.Expires = time.Now().Add(ttl).UnixNano()
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	// Write-then-rename keeps concurrent readers from seeing a torn
	// entry.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *fileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.entryPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (c *fileCache) Close() error { return nil }

// entryPath shards keys by content hash: <root>/ab/cdef...json.
func (c *fileCache) entryPath(key string) string {
	digest := Hash([]byte(key))
	return filepath.Join(c.root, digest[:2], digest[2:]+".json")
}
