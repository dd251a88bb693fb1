package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	events := writeEventsCSV(t, dir)
	cfg := writeSmallConfig(t, dir)
	out := filepath.Join(dir, "timeline.png")

	if err := runCommand(t, "generate", events, out, cfg, "--no-cache"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	png, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestGenerateCommandConfigFlag(t *testing.T) {
	dir := t.TempDir()
	events := writeEventsCSV(t, dir)
	cfg := writeSmallConfig(t, dir)
	out := filepath.Join(dir, "timeline.png")

	if err := runCommand(t, "generate", events, out, "--config", cfg, "--no-cache"); err != nil {
		t.Fatalf("generate with --config: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestGenerateCommandRejectsDoubleConfig(t *testing.T) {
	dir := t.TempDir()
	events := writeEventsCSV(t, dir)
	cfg := writeSmallConfig(t, dir)
	out := filepath.Join(dir, "timeline.png")

	err := runCommand(t, "generate", events, out, cfg, "--config", cfg, "--no-cache")
	if err == nil {
		t.Fatal("expected error when config is passed twice")
	}
	if !strings.Contains(err.Error(), "config given both") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerateCommandInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	events := writeEventsCSV(t, dir)
	out := filepath.Join(dir, "timeline.png")

	err := runCommand(t, "generate", events, out, "--format", "svg", "--no-cache")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "INVALID_FORMAT") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerateCommandJSONFormat(t *testing.T) {
	dir := t.TempDir()
	events := writeEventsCSV(t, dir)
	cfg := writeSmallConfig(t, dir)
	out := filepath.Join(dir, "timeline.json")

	if err := runCommand(t, "generate", events, out, cfg, "--format", "json", "--no-cache"); err != nil {
		t.Fatalf("generate json: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if !strings.Contains(string(data), "primitives") {
		t.Error("JSON artifact does not contain scene primitives")
	}
}

func TestGenerateCommandBothFormats(t *testing.T) {
	dir := t.TempDir()
	events := writeEventsCSV(t, dir)
	cfg := writeSmallConfig(t, dir)
	out := filepath.Join(dir, "timeline.png")

	if err := runCommand(t, "generate", events, out, cfg, "--format", "png,json", "--no-cache"); err != nil {
		t.Fatalf("generate png,json: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("PNG artifact missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "timeline.json")); err != nil {
		t.Errorf("JSON artifact missing: %v", err)
	}
}

func TestGenerateCommandMissingEvents(t *testing.T) {
	dir := t.TempDir()
	err := runCommand(t, "generate", filepath.Join(dir, "absent.csv"), filepath.Join(dir, "out.png"), "--no-cache")
	if err == nil {
		t.Fatal("expected error for missing events file")
	}
}

func TestGenerateCommandEmptyEventsWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.csv")
	if err := os.WriteFile(path, []byte("name,date,position\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.png")

	err := runCommand(t, "generate", path, out, "--no-cache")
	if err == nil {
		t.Fatal("expected error for empty event list")
	}
	if !strings.Contains(err.Error(), "EMPTY_EVENT_SET") {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("no output should exist after a failed run, stat returned %v", err)
	}
}

func TestGenerateCommandInvalidPlacement(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.csv")
	csv := "name,date,position\nKickoff,01.02.2024,sideways\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	err := runCommand(t, "generate", path, filepath.Join(dir, "out.png"), "--no-cache")
	if err == nil {
		t.Fatal("expected error for invalid placement")
	}
	if !strings.Contains(err.Error(), "INVALID_PLACEMENT") {
		t.Errorf("unexpected error: %v", err)
	}
}
