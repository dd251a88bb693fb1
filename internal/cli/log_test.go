package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Debug("quiet")
	if buf.Len() != 0 {
		t.Errorf("debug output below level should be dropped, got %q", buf.String())
	}

	logger.Info("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Errorf("info output missing, got %q", buf.String())
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	time.Sleep(5 * time.Millisecond)
	prog.done("Parsed 3 events")

	out := buf.String()
	if !strings.Contains(out, "Parsed 3 events") {
		t.Errorf("output %q missing the completion message", out)
	}
	if !strings.Contains(out, "s)") {
		t.Errorf("output %q missing the elapsed duration", out)
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	logger := newLogger(io.Discard, log.InfoLevel)

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should fall back to the default logger")
	}
}

func TestVerboseFlagEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	root := c.RootCommand()
	root.SetArgs([]string{"--verbose", "cache", "path"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}

	c.Logger.Debug("after verbose")
	if !strings.Contains(buf.String(), "after verbose") {
		t.Error("--verbose should switch the logger to debug level")
	}
}
