// Package server implements the Eventline HTTP API.
//
// The API drives the browser editor: it reads and writes the CSV files
// and style config in a data directory, renders previews and exports
// through the shared pipeline, and manages saved timeline documents in
// a store. Every JSON response uses a common envelope:
//
//	{"success": true, ...}
//	{"success": false, "error": "..."}
//
// Binary responses (previews, downloads) are served raw with the
// appropriate content type.
//
// # Usage
//
//	srv, err := server.New(server.Config{
//	    DataDir: "./data",
//	    Store:   st,
//	    Runner:  runner,
//	    Logger:  logger,
//	})
//	if err != nil {
//	    return err
//	}
//	defer srv.Close()
//	http.ListenAndServe(":8080", srv.Handler())
package server

import (
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/pipeline"
	"github.com/matzehuels/eventline/pkg/store"
)

const (
	// maxBodyBytes caps request bodies. 16 MiB covers pasted event
	// grids and CSV uploads with room to spare.
	maxBodyBytes = 16 << 20

	// defaultCSV is the events file used when a request names none.
	defaultCSV = "events.csv"

	// configFile is the persisted style config inside the data dir.
	configFile = "config.json"
)

// Config holds the server dependencies.
type Config struct {
	DataDir string           // Directory holding CSV files and config.json (default ".")
	Store   store.Store      // Saved timeline documents (default: file store)
	Runner  *pipeline.Runner // Render pipeline (default: uncached)
	Logger  *log.Logger
}

// Server handles the HTTP API. Handlers are safe for concurrent use;
// per-file writes rely on the data-dir being owned by one server.
type Server struct {
	dataDir string
	store   store.Store
	runner  *pipeline.Runner
	logger  *log.Logger
}

// New creates a Server, filling in defaults for missing dependencies
// and creating the data directory if needed.
func New(cfg Config) (*Server, error) {
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		st, err := store.NewFileStore("")
		if err != nil {
			return nil, err
		}
		cfg.Store = st
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot create data directory %s", cfg.DataDir)
	}
	return &Server{
		dataDir: cfg.DataDir,
		store:   cfg.Store,
		runner:  cfg.Runner,
		logger:  cfg.Logger,
	}, nil
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(capRequestBody)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", s.handleGetConfig)
		r.Post("/config", s.handleUpdateConfig)

		r.Get("/csv", s.handleGetCSV)
		r.Post("/csv", s.handleUpdateCSV)

		r.Post("/preview", s.handlePreview)
		r.Post("/export/{format}", s.handleExport)
		r.Post("/import/csv", s.handleImportCSV)
		r.Get("/files", s.handleListFiles)

		r.Route("/timelines", func(r chi.Router) {
			r.Get("/", s.handleListTimelines)
			r.Post("/", s.handleCreateTimeline)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetTimeline)
				r.Put("/", s.handleUpdateTimeline)
				r.Delete("/", s.handleDeleteTimeline)
			})
		})
	})

	return r
}

// Close releases the store and the runner's cache.
func (s *Server) Close() error {
	err := s.store.Close()
	if cerr := s.runner.Close(); err == nil {
		err = cerr
	}
	return err
}

// logRequests logs one line per request through the server's logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

// capRequestBody limits request bodies to maxBodyBytes.
func capRequestBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}
