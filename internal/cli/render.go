package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eventline/pkg/layout"
	"github.com/matzehuels/eventline/pkg/pipeline"
	"github.com/matzehuels/eventline/pkg/render"
)

// renderCommand creates the render command for rasterizing a scene.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render <scene.json>",
		Short: "Rasterize a scene file into a PNG",
		Long: `Rasterize a scene file into a PNG.

The render command takes a scene.json file (produced by 'layout') and draws
it. The scene carries all positioning information, so this step is purely
about rasterizing primitives.

Repeated runs with unchanged inputs are served from the local cache.

Use 'generate' as a shortcut to go directly from an events CSV to an image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.png)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender loads the scene and rasterizes it.
func (c *CLI) runRender(ctx context.Context, input, output string, noCache bool) error {
	scene, err := layout.ReadSceneFile(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Formats: []string{pipeline.FormatPNG}, Logger: loggerFromContext(ctx)}

	spinner := newSpinnerWithContext(ctx, "Rendering timeline...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, &scene, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		base = strings.TrimSuffix(base, ".scene")
		outputPath = base + ".png"
	}

	if err := render.WriteBytes(outputPath, artifacts[pipeline.FormatPNG]); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Render complete")
	printFile(outputPath)
	printStats(0, len(scene.Primitives), cacheHit)

	return nil
}
