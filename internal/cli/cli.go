package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/eventline/pkg/buildinfo"
	"github.com/matzehuels/eventline/pkg/cache"
	"github.com/matzehuels/eventline/pkg/pipeline"
)

// appName names the binary and its cache directory.
const appName = "eventline"

// Log levels accepted by SetLogLevel.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI carries the state shared by every subcommand.
type CLI struct {
	Logger *log.Logger
}

// New builds a CLI writing log output to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand assembles the root cobra command and registers every
// subcommand on it.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "eventline",
		Short:        "Eventline renders dated events as timeline images",
		Long:         `Eventline is a CLI tool for turning a CSV of dated events into a rendered timeline image, with alternating labels above and below a central spine.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.generateCommand(),
		c.parseCommand(),
		c.layoutCommand(),
		c.renderCommand(),
		c.editCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	)
	return root
}

// newRunner builds the pipeline runner commands execute against.
// Artifacts land in the user cache directory unless noCache is set.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		// No resolvable cache location; run uncached rather than fail.
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir resolves the per-user cache directory,
// ~/.cache/eventline on Linux unless XDG_CACHE_HOME overrides it.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

// parseFormats splits a comma-separated format flag value, trimming
// whitespace and dropping empty items. An empty value selects the
// default format.
func parseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return []string{pipeline.DefaultFormat}
	}
	return formats
}
