// Package cli implements the lotplan command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lotplan/pkg/buildinfo"
	"github.com/matzehuels/lotplan/pkg/config"
	"github.com/matzehuels/lotplan/pkg/errors"
	lotio "github.com/matzehuels/lotplan/pkg/io"
	"github.com/matzehuels/lotplan/pkg/layout"
	"github.com/matzehuels/lotplan/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "lotplan"

	// defaultDraft is the draft file used when --file is not given.
	defaultDraft = "lot.json"
)

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
	Config config.Config

	configPath string
	draftPath  string
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
		Use:          appName,
		Short:        "Lotplan designs parking-lot layouts",
		Long:         `Lotplan places fixed-size parking spots on a bounded canvas, rejecting any edit that would leave the canvas or overlap another spot, and suggests where the next spot should go.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			hooks := &logHooks{logger: c.Logger}
			observability.SetLayoutHooks(hooks)
			observability.SetStoreHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/lotplan/config.toml)")
	root.PersistentFlags().StringVarP(&c.draftPath, "file", "f", defaultDraft, "layout draft file")

	// Register all subcommands
	root.AddCommand(c.newCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.suggestCommand())
	root.AddCommand(c.acceptCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.rotateCommand())
	root.AddCommand(c.relabelCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.publishCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Draft Helpers
// =============================================================================

// loadDraft reads the draft named by --file.
func (c *CLI) loadDraft() (*layout.State, error) {
	s, err := lotio.ImportJSON(c.draftPath)
	if errors.Is(err, errors.ErrCodeNotFound) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err,
			"no layout at %s; run '%s new' first", c.draftPath, appName)
	}
	return s, err
}

// saveDraft writes s back to the file named by --file.
func (c *CLI) saveDraft(s *layout.State) error {
	if err := lotio.ExportJSON(s, c.draftPath); err != nil {
		return err
	}
	c.Logger.Debug("draft saved", "path", c.draftPath, "spots", s.Len())
	return nil
}

// editDraft runs one edit as load, mutate, save. Nothing is written when fn
// fails, so a rejected edit leaves the file untouched.
func (c *CLI) editDraft(fn func(s *layout.State) error) (*layout.State, error) {
	s, err := c.loadDraft()
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	return s, c.saveDraft(s)
}
