package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eventline/internal/server"
	"github.com/matzehuels/eventline/pkg/cache"
	"github.com/matzehuels/eventline/pkg/pipeline"
	"github.com/matzehuels/eventline/pkg/store"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		port     int
		dataDir  string
		mongoURI string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API for the browser editor",
		Long: `Start the HTTP API for the browser editor.

The server reads and writes event CSVs and the style config in the data
directory, renders previews and exports through the shared pipeline, and
stores saved timelines on disk (or in MongoDB with --mongo-uri). Rendered
previews are cached on disk (or in Redis with --redis-url).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), port, dataDir, mongoURI, redisURL, noCache)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 5001, "port to listen on")
	cmd.Flags().StringVar(&dataDir, "data-dir", ".", "directory holding CSV files and config.json")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "store timelines in MongoDB at this URI")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "cache rendered previews in Redis at this URL")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the cache, store, and pipeline into an HTTP server and
// blocks until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, port int, dataDir, mongoURI, redisURL string, noCache bool) error {
	pipelineCache, err := c.serveCache(ctx, redisURL, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	st, err := c.serveStore(ctx, mongoURI)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}

	srv, err := server.New(server.Config{
		DataDir: dataDir,
		Store:   st,
		Runner:  pipeline.NewRunner(pipelineCache, nil, c.Logger),
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	c.Logger.Info("server started", "addr", httpServer.Addr, "data_dir", dataDir)
	printInfo("Listening on http://localhost:%d", port)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	printInline("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		printNewline()
		return fmt.Errorf("shutdown: %w", err)
	}

	printNewline()
	printSuccess("Server stopped")
	return nil
}

// serveCache picks the pipeline cache backend for serve.
func (c *CLI) serveCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	switch {
	case noCache:
		return cache.NewNullCache(), nil
	case redisURL != "":
		return cache.NewRedisCache(ctx, redisURL)
	default:
		return newCache(false)
	}
}

// serveStore picks the timeline store backend for serve.
func (c *CLI) serveStore(ctx context.Context, mongoURI string) (store.Store, error) {
	if mongoURI != "" {
		return store.NewMongoStore(ctx, mongoURI)
	}
	return store.NewFileStore("")
}
