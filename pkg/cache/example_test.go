package cache_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/eventline/pkg/cache"
)

func ExampleNewFileCache() {
	dir := filepath.Join(os.TempDir(), "eventline-example")
	c, err := cache.NewFileCache(dir)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer os.RemoveAll(dir)
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "scene:abc", []byte(`{"width":4800}`), time.Hour); err != nil {
		fmt.Println("Error:", err)
		return
	}

	data, ok, _ := c.Get(ctx, "scene:abc")
	fmt.Println("Found:", ok)
	fmt.Println("Data:", string(data))

	_, ok, _ = c.Get(ctx, "scene:other")
	fmt.Println("Missing key found:", ok)
	// Output:
	// Found: true
	// Data: {"width":4800}
	// Missing key found: false
}

func ExampleNewScopedKeyer() {
	// Tenants sharing one backend get disjoint key spaces
	base := cache.NewDefaultKeyer()
	tenant := cache.NewScopedKeyer(base, "ws:abc123:")

	fmt.Println(base.HTTPKey("remote", "https://example.com/events.csv"))
	fmt.Println(tenant.HTTPKey("remote", "https://example.com/events.csv"))
	// Output:
	// http:remote:https://example.com/events.csv
	// ws:abc123:http:remote:https://example.com/events.csv
}
