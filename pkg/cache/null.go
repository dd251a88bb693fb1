package cache

import (
	"context"
	"time"
)

// nullCache discards all writes and misses on every read. It backs
// --no-cache runs and tests where cached state would hide behavior.
type nullCache struct{}

// NewNullCache creates a cache that never stores or returns entries.
func NewNullCache() Cache {
	return nullCache{}
}

func (nullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (nullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (nullCache) Delete(context.Context, string) error { return nil }

func (nullCache) Close() error { return nil }
