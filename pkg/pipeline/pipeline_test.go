package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/eventline/pkg/cache"
	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/layout"
	"github.com/matzehuels/eventline/pkg/style"
	"github.com/matzehuels/eventline/pkg/timeline"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"png", false},
		{"json", false},
		{"invalid", true},
		{"PNG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if tt.wantErr && errors.GetCode(err) != errors.ErrCodeInvalidFormat {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"png", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"png", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidateForParse(t *testing.T) {
	// Missing source and records
	opts := Options{}
	if err := opts.ValidateForParse(); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("Missing source should fail with %s, got %v", errors.ErrCodeInvalidInput, err)
	}

	// Valid with source
	opts = Options{Source: "events.csv"}
	if err := opts.ValidateForParse(); err != nil {
		t.Errorf("Source options should pass: %v", err)
	}
	if opts.Logger == nil || opts.Resolver == nil {
		t.Error("ValidateForParse should fill runtime defaults")
	}

	// Valid with inline records
	opts = Options{Records: []timeline.Record{{Name: "Kickoff", Date: "01.02.2024"}}}
	if err := opts.ValidateForParse(); err != nil {
		t.Errorf("Record options should pass: %v", err)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatPNG {
		t.Errorf("Formats should be [png], got %v", opts.Formats)
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	opts := Options{MaxWidth: -1}
	if err := opts.ValidateForRender(); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("Negative MaxWidth should fail, got %v", err)
	}

	opts = Options{Formats: []string{"gif"}}
	if err := opts.ValidateForRender(); errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("Unknown format should fail, got %v", err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Source: "events.csv"}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalFormats := len(opts.Formats)

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestImageKeyOpts(t *testing.T) {
	opts := Options{MaxWidth: 400}

	png := opts.ImageKeyOpts(FormatPNG)
	if png.Format != FormatPNG || png.MaxWidth != 400 {
		t.Errorf("png key opts = %+v", png)
	}

	// The width cap only affects PNG bytes, so it must not fragment
	// JSON cache entries.
	js := opts.ImageKeyOpts(FormatJSON)
	if js.Format != FormatJSON || js.MaxWidth != 0 {
		t.Errorf("json key opts = %+v", js)
	}
}

func TestMarshalEventsRoundTrip(t *testing.T) {
	events, err := timeline.ParseRecords([]timeline.Record{
		{Name: "Kickoff", Date: "01.02.2024", Position: "above"},
		{Name: "Launch", Date: "01.06.2024"},
	})
	if err != nil {
		t.Fatalf("ParseRecords failed: %v", err)
	}

	data, err := MarshalEvents(events)
	if err != nil {
		t.Fatalf("MarshalEvents failed: %v", err)
	}

	back, err := UnmarshalEvents(data)
	if err != nil {
		t.Fatalf("UnmarshalEvents failed: %v", err)
	}
	if len(back) != 2 || back[0] != events[0] || back[1] != events[1] {
		t.Errorf("round trip mismatch: %+v", back)
	}
}

func TestUnmarshalEventsMalformed(t *testing.T) {
	if _, err := UnmarshalEvents([]byte("{")); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("malformed JSON should fail with %s, got %v", errors.ErrCodeInvalidInput, err)
	}
}

// =============================================================================
// Runner
// =============================================================================

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

// smallStyles keeps rendered frames tiny so tests stay fast.
func smallStyles() *style.Config {
	return &style.Config{
		Dimensions: &style.DimensionsConfig{
			Width:  ptrF(8),
			Height: ptrF(5),
			DPI:    ptrI(40),
		},
	}
}

func writeEventsCSV(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.csv")
	if err := os.WriteFile(path, []byte(rows), 0644); err != nil {
		t.Fatalf("write events: %v", err)
	}
	return path
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Errorf("NewRunner should fill nil collaborators: %+v", r)
	}
}

func TestRunnerExecute(t *testing.T) {
	source := writeEventsCSV(t, "name,date,position\nKickoff,01.02.2024,above\nLaunch,01.06.2024,below\n")
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{
		Source:  source,
		Styles:  smallStyles(),
		Formats: []string{FormatPNG, FormatJSON},
	}

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Stats.EventCount != 2 {
		t.Errorf("EventCount = %d, want 2", result.Stats.EventCount)
	}
	if len(result.Events) != 2 || result.Events[0].Name != "Kickoff" {
		t.Errorf("unexpected events: %+v", result.Events)
	}
	if result.Scene == nil || result.Stats.PrimitiveCount != len(result.Scene.Primitives) {
		t.Error("scene stats out of sync")
	}
	if result.SceneHash == "" {
		t.Error("SceneHash should be set")
	}

	png := result.Artifacts[FormatPNG]
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("png artifact is not a PNG")
	}
	scene, err := layout.UnmarshalScene(result.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact did not parse: %v", err)
	}
	if scene.Width != result.Scene.Width || len(scene.Primitives) != len(result.Scene.Primitives) {
		t.Error("json artifact does not match the scene")
	}

	if result.CacheInfo.ParseHit || result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("first run should miss every cache: %+v", result.CacheInfo)
	}

	// Second run hits every stage cache.
	again, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute failed: %v", err)
	}
	if !again.CacheInfo.ParseHit || !again.CacheInfo.LayoutHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run should hit every cache: %+v", again.CacheInfo)
	}
	if !bytes.Equal(again.Artifacts[FormatPNG], png) {
		t.Error("cached PNG differs from rendered PNG")
	}
}

func TestRunnerExecuteEditedSourceMisses(t *testing.T) {
	source := writeEventsCSV(t, "name,date\nKickoff,01.02.2024\n")
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{Source: source, Styles: smallStyles()}
	if _, err := runner.Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	// Editing the file changes the content hash, so nothing stale is
	// served.
	if err := os.WriteFile(source, []byte("name,date\nKickoff,02.02.2024\n"), 0644); err != nil {
		t.Fatal(err)
	}
	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute after edit failed: %v", err)
	}
	if result.CacheInfo.ParseHit {
		t.Error("edited source should not hit the events cache")
	}
	if result.Events[0].Date.String() != "02.02.2024" {
		t.Errorf("expected re-parsed date, got %s", result.Events[0].Date)
	}
}

func TestRunnerExecuteInvalidDate(t *testing.T) {
	source := writeEventsCSV(t, "name,date\nKickoff,2024-02-01\n")
	runner := NewRunner(nil, nil, nil)

	_, err := runner.Execute(context.Background(), Options{Source: source, Styles: smallStyles()})
	if errors.GetCode(err) != errors.ErrCodeInvalidDateFormat {
		t.Errorf("expected %s, got %v", errors.ErrCodeInvalidDateFormat, err)
	}
}

func TestRunnerExecuteEmptyEvents(t *testing.T) {
	source := writeEventsCSV(t, "name,date\n")
	runner := NewRunner(nil, nil, nil)

	_, err := runner.Execute(context.Background(), Options{Source: source, Styles: smallStyles()})
	if errors.GetCode(err) != errors.ErrCodeEmptyEventSet {
		t.Errorf("expected %s, got %v", errors.ErrCodeEmptyEventSet, err)
	}
}

func TestRunnerExecuteInlineRecords(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Execute(context.Background(), Options{
		Records: []timeline.Record{
			{Name: "Alpha", Date: "15.03.2024"},
			{Name: "Beta", Date: "20.07.2024", Position: "below"},
		},
		Styles:   smallStyles(),
		MaxWidth: 100,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Stats.EventCount != 2 {
		t.Errorf("EventCount = %d, want 2", result.Stats.EventCount)
	}
	if !bytes.HasPrefix(result.Artifacts[FormatPNG], pngMagic) {
		t.Error("png artifact is not a PNG")
	}
}

func TestResolveStylesPrecedence(t *testing.T) {
	ctx := context.Background()

	// Inline styles win over defaults.
	opts := Options{Styles: smallStyles()}
	opts.SetLayoutDefaults()
	styles, err := ResolveStyles(ctx, opts)
	if err != nil {
		t.Fatalf("ResolveStyles failed: %v", err)
	}
	if styles.Dimensions.Width != 8 {
		t.Errorf("Width = %v, want 8", styles.Dimensions.Width)
	}

	// No config resolves the defaults.
	opts = Options{}
	opts.SetLayoutDefaults()
	styles, err = ResolveStyles(ctx, opts)
	if err != nil {
		t.Fatalf("ResolveStyles failed: %v", err)
	}
	if styles != style.Defaults() {
		t.Error("expected default styles")
	}

	// The adjust-overlaps option overlays the config.
	opts = Options{Styles: smallStyles(), AdjustOverlaps: true}
	opts.SetLayoutDefaults()
	styles, err = ResolveStyles(ctx, opts)
	if err != nil {
		t.Fatalf("ResolveStyles failed: %v", err)
	}
	if !styles.Visual.AdjustOverlaps {
		t.Error("AdjustOverlaps should be set")
	}
}

func TestStageHashesDiscriminate(t *testing.T) {
	eventsA, _ := timeline.ParseRecords([]timeline.Record{{Name: "A", Date: "01.02.2024"}})
	eventsB, _ := timeline.ParseRecords([]timeline.Record{{Name: "B", Date: "01.02.2024"}})

	if eventsHash(eventsA) == eventsHash(eventsB) {
		t.Error("different events should hash differently")
	}
	if eventsHash(eventsA) != eventsHash(eventsA) {
		t.Error("hash should be deterministic")
	}

	defaults := style.Defaults()
	small, err := smallStyles().Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if stylesHash(defaults) == stylesHash(small) {
		t.Error("different styles should hash differently")
	}
}
