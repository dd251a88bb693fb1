package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/io"
	"github.com/matzehuels/eventline/pkg/pipeline"
	"github.com/matzehuels/eventline/pkg/store"
	"github.com/matzehuels/eventline/pkg/style"
	"github.com/matzehuels/eventline/pkg/timeline"
)

// timelineRequest is the JSON body shared by the preview, export and
// saved-timeline endpoints: the grid rows plus the style config they
// are edited with.
type timelineRequest struct {
	Name   string            `json:"name,omitempty"`
	Data   []timeline.Record `json:"data"`
	Config *style.Config     `json:"config,omitempty"`
}

// pruneRecords drops rows missing a name or a date. The browser grid
// posts half-filled rows while the user is still typing; they are not
// events yet and must not fail the render.
func pruneRecords(records []timeline.Record) []timeline.Record {
	kept := make([]timeline.Record, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.Name) == "" || strings.TrimSpace(rec.Date) == "" {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, envelope{"status": "ok"})
}

// handleGetConfig returns the data-dir style config, fully resolved
// over the defaults so every editor control has a value.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.dataDir, configFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.writeJSON(w, http.StatusOK, envelope{"config": style.Defaults().Config()})
		return
	}
	resolved, err := style.LoadResolved(path)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{"config": resolved.Config()})
}

// handleUpdateConfig validates the posted config and persists it as
// the data-dir config.json. The partial config is stored as posted;
// defaults are applied on read.
func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg style.Config
	if err := decodeJSON(r, &cfg); err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := cfg.Resolve(); err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "failed to encode config"))
		return
	}
	path := filepath.Join(s.dataDir, configFile)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot write %s", path))
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}

// handleGetCSV returns the rows of a CSV in the data dir. The ?file=
// query selects the file; it defaults to events.csv.
func (s *Server) handleGetCSV(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("file")
	if name == "" {
		name = defaultCSV
	}
	if err := errors.ValidateDataFilename(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	records, err := io.ImportCSV(filepath.Join(s.dataDir, name))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []timeline.Record{}
	}
	s.writeJSON(w, http.StatusOK, envelope{"data": records, "file": name})
}

// handleUpdateCSV persists posted rows to a CSV in the data dir.
func (s *Server) handleUpdateCSV(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Data []timeline.Record `json:"data"`
		File string            `json:"file,omitempty"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.File == "" {
		body.File = defaultCSV
	}
	if err := errors.ValidateDataFilename(body.File); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := io.ExportCSV(body.Data, filepath.Join(s.dataDir, body.File)); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}

// handlePreview renders the posted rows and config to a PNG and
// returns the image bytes. The ?width= query caps the image width.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var body timelineRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	rows := pruneRecords(body.Data)
	if len(rows) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "no valid events to display"))
		return
	}
	opts := pipeline.Options{
		Records:  rows,
		Styles:   body.Config,
		Formats:  []string{pipeline.FormatPNG},
		MaxWidth: queryInt(r, "width", 0),
		Logger:   s.logger,
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	png := result.Artifacts[pipeline.FormatPNG]
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Write(png)
}

// handleExport renders the posted rows into a downloadable file. PNG
// goes through the cached pipeline; CSV and JSON round-trip the rows
// exactly as posted, blank rows included.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	var body timelineRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	switch format {
	case "png":
		rows := pruneRecords(body.Data)
		if len(rows) == 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "no valid events to display"))
			return
		}
		opts := pipeline.Options{
			Records: rows,
			Styles:  body.Config,
			Formats: []string{pipeline.FormatPNG},
			Logger:  s.logger,
		}
		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		serveDownload(w, "timeline.png", "image/png", result.Artifacts[pipeline.FormatPNG])

	case "csv":
		var buf bytes.Buffer
		if err := io.WriteCSV(&buf, body.Data); err != nil {
			s.writeError(w, r, err)
			return
		}
		serveDownload(w, "timeline_data.csv", "text/csv", buf.Bytes())

	case "json":
		bundle := io.Bundle{Config: body.Config, Events: body.Data}
		if bundle.Events == nil {
			bundle.Events = []timeline.Record{}
		}
		var buf bytes.Buffer
		if err := io.WriteBundle(&buf, bundle); err != nil {
			s.writeError(w, r, err)
			return
		}
		serveDownload(w, "timeline_export.json", "application/json", buf.Bytes())

	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unsupported export format %q", format))
	}
}

// handleImportCSV parses an uploaded CSV and returns its rows without
// touching the data dir. The client decides whether to save them.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "no file provided"))
		return
	}
	defer file.Close()
	if header.Filename == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "no file selected"))
		return
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "file must be a CSV"))
		return
	}
	records, err := io.ReadCSV(file)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []timeline.Record{}
	}
	s.writeJSON(w, http.StatusOK, envelope{"data": records})
}

// handleListFiles lists the CSV files in the data dir.
func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "cannot read data directory"))
		return
	}
	files := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		files = append(files, e.Name())
	}
	s.writeJSON(w, http.StatusOK, envelope{"files": files})
}

// handleListTimelines returns all saved timelines, newest first.
func (s *Server) handleListTimelines(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if docs == nil {
		docs = []store.Timeline{}
	}
	s.writeJSON(w, http.StatusOK, envelope{"timelines": docs})
}

// handleCreateTimeline saves the posted rows and config as a new named
// timeline document.
func (s *Server) handleCreateTimeline(w http.ResponseWriter, r *http.Request) {
	var body timelineRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "name is required"))
		return
	}
	if body.Data == nil {
		body.Data = []timeline.Record{}
	}
	doc := store.New(body.Name, io.Bundle{Config: body.Config, Events: body.Data})
	if err := s.store.Save(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, envelope{"timeline": doc})
}

// handleGetTimeline returns one saved timeline by id.
func (s *Server) handleGetTimeline(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{"timeline": doc})
}

// handleUpdateTimeline updates the named fields of a saved timeline.
// Omitted fields keep their stored values.
func (s *Server) handleUpdateTimeline(w http.ResponseWriter, r *http.Request) {
	var body timelineRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.Name != "" {
		doc.Name = body.Name
	}
	if body.Data != nil {
		doc.Bundle.Events = body.Data
	}
	if body.Config != nil {
		doc.Bundle.Config = body.Config
	}
	doc.Touch()
	if err := s.store.Save(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{"timeline": doc})
}

// handleDeleteTimeline removes a saved timeline.
func (s *Server) handleDeleteTimeline(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}
