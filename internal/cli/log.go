// Package cli implements the eventline command-line interface.
//
// This package provides commands for parsing event CSVs, laying out and
// rendering timeline images, editing event files in the terminal, and
// serving the browser editor. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Subcommands
//
//   - generate: Run the full parse, layout, and render pipeline in one step
//   - parse: Validate an events CSV and emit the canonical event list
//   - layout: Compute scene geometry from a parsed event list
//   - render: Rasterize a scene file into a PNG
//   - edit: Edit an events CSV in an interactive terminal table
//   - serve: Start the HTTP API for the browser editor
//   - cache: Manage the render and response cache
//
// # Logging
//
// The root command's --verbose (-v) flag switches the shared logger to
// debug level. Command contexts carry the logger, and the pipeline
// reports its progress through it.
//
// # Example
//
//	import "github.com/matzehuels/eventline/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the charmbracelet logger all commands share.
// Timestamps render as "15:04:05.00".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress reports how long an operation took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time since the tracker was created,
// rounded to a millisecond.
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

// withLogger attaches l to ctx for loggerFromContext to find.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when the context carries none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
