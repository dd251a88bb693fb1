package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eventline/pkg/layout"
	"github.com/matzehuels/eventline/pkg/pipeline"
)

// layoutCommand creates the layout command for computing scene geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output         string
		configFlag     string
		adjustOverlaps bool
		noCache        bool
	)

	cmd := &cobra.Command{
		Use:   "layout <events.json>",
		Short: "Compute scene geometry from a parsed event list",
		Long: `Compute scene geometry from a parsed event list.

The layout command takes an events.json file (produced by 'parse'), resolves
the style configuration, and computes the scene: spine, ticks, connectors,
and label boxes with all positions in pixels. The output is a scene.json
file that can be rasterized with 'render'.

Repeated runs with unchanged inputs are served from the local cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], configFlag, output, adjustOverlaps, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.scene.json)")
	cmd.Flags().StringVar(&configFlag, "config", "", "style config: local path or http(s) URL")
	cmd.Flags().BoolVar(&adjustOverlaps, "adjust-overlaps", false, "nudge overlapping labels apart")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout loads the event list, computes the scene, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, config, output string, adjustOverlaps, noCache bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load events %s: %w", input, err)
	}
	events, err := pipeline.UnmarshalEvents(data)
	if err != nil {
		return fmt.Errorf("load events %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Config: config, AdjustOverlaps: adjustOverlaps, Logger: loggerFromContext(ctx)}

	styles, err := pipeline.ResolveStyles(ctx, opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing scene layout...")
	spinner.Start()

	scene, cacheHit, err := runner.GenerateSceneWithCacheInfo(ctx, events, styles, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".scene.json"
	}

	if err := layout.WriteSceneFile(*scene, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(events), len(scene.Primitives), cacheHit)
	printNewline()
	printNextStep("Render", "eventline render "+outputPath)

	return nil
}
