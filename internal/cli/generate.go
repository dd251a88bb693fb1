package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/pipeline"
	"github.com/matzehuels/eventline/pkg/render"
)

// generateCommand creates the generate command running the full pipeline.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		configFlag     string
		formatsStr     string
		adjustOverlaps bool
		refresh        bool
		noCache        bool
	)

	cmd := &cobra.Command{
		Use:   "generate <events> <output> [config]",
		Short: "Generate a timeline image from an events CSV",
		Long: `Generate a timeline image from an events CSV in one step.

The generate command runs the full pipeline: parse the events CSV, resolve
the style configuration, compute the scene layout, and render the output.
Events and config sources may be local paths or http(s) URLs.

Examples:
  eventline generate events.csv timeline.png
  eventline generate events.csv timeline.png config.json
  eventline generate https://example.com/events.csv out.png --config styles.json
  eventline generate events.csv out.png --format png,json`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Source:         args[0],
				Config:         configFlag,
				AdjustOverlaps: adjustOverlaps,
				Refresh:        refresh,
				Formats:        parseFormats(formatsStr),
			}
			if len(args) == 3 {
				if configFlag != "" {
					return errors.New(errors.ErrCodeInvalidInput, "config given both as argument and --config flag")
				}
				opts.Config = args[2]
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), opts, args[1], noCache)
		},
	}

	cmd.Flags().StringVar(&configFlag, "config", "", "style config: local path or http(s) URL")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), json (comma-separated)")
	cmd.Flags().BoolVar(&adjustOverlaps, "adjust-overlaps", false, "nudge overlapping labels apart")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache for remote sources")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runGenerate executes the full pipeline and writes the requested artifacts.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating timeline from %s...", opts.Source))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeArtifacts(result.Artifacts, opts.Formats, output); err != nil {
		return err
	}

	printSuccess("Timeline generated")
	for _, format := range opts.Formats {
		printFile(artifactPath(output, format))
	}
	cached := result.CacheInfo.ParseHit && result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	printStats(result.Stats.EventCount, result.Stats.PrimitiveCount, cached)

	return nil
}

// artifactPath derives the output path for one format from the requested
// output path. A format matching the path's extension keeps the path as
// given; any other format swaps the extension.
func artifactPath(output, format string) string {
	ext := filepath.Ext(output)
	if strings.TrimPrefix(ext, ".") == format {
		return output
	}
	return strings.TrimSuffix(output, ext) + "." + format
}

// writeArtifacts writes each rendered artifact next to the requested output path.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) error {
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		if err := render.WriteBytes(artifactPath(output, format), data); err != nil {
			return err
		}
	}
	return nil
}
