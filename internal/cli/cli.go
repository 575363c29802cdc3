// Package cli implements the roadmap command-line interface.
//
// # Commands
//
//   - normalize: Reduce a raw roadmap document to its module list
//   - build: Run the full pipeline and write the graph snapshot
//   - status: Show every node with its unlock status and progress
//   - layout: Show computed positions and bounds
//   - render: Draw the roadmap as SVG, PNG or DOT
//   - explore: Browse the roadmap interactively
//   - serve: Expose the engine over HTTP
//   - config: Write a default configuration file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cariskill/roadmap/internal/config"
	"github.com/cariskill/roadmap/pkg/buildinfo"
	"github.com/cariskill/roadmap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "roadmap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	// Config is loaded before any subcommand runs.
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Roadmap turns learning roadmaps into explorable graphs",
		Long:          `Roadmap normalizes generated learning roadmaps, builds a prerequisite graph rooted at the learner, lays it out in ranks and tracks which modules are unlocked.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: .roadmap/config.toml, then $XDG_CONFIG_HOME/roadmap/config.toml)")

	root.AddCommand(c.normalizeCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.statusCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}
