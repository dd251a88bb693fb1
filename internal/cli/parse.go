package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eventline/pkg/pipeline"
)

// parseCommand creates the parse command for validating event CSVs.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		output  string
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "parse <events>",
		Short: "Parse and validate an events CSV",
		Long: `Parse and validate an events CSV.

The parse command reads an events CSV from a local path or http(s) URL,
validates every row (dates must be DD.MM.YYYY), and emits the canonical
event list as JSON. The output can be fed to 'layout'.

Examples:
  eventline parse events.csv
  eventline parse events.csv -o events.json
  eventline parse https://example.com/events.csv --refresh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd.Context(), args[0], output, refresh, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache for remote sources")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runParse parses the events source and writes the canonical event list.
func (c *CLI) runParse(ctx context.Context, source, output string, refresh, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	opts := pipeline.Options{Source: source, Refresh: refresh, Logger: logger}

	logger.Infof("Parsing %s", source)
	prog := newProgress(logger)
	events, cacheHit, err := runner.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %d events", len(events)))

	data, err := pipeline.MarshalEvents(events)
	if err != nil {
		return err
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(append(data, '\n')); err != nil {
		return err
	}

	// Decorative output only when not streaming JSON to stdout.
	if output != "" {
		printSuccess("Parsed %d events", len(events))
		printFile(output)
		printStats(len(events), 0, cacheHit)
		printNewline()
		printNextStep("Layout", "eventline layout "+output)
	}

	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
