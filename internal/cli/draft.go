package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/layout"
)

// newOpts holds the command-line flags for the new command.
type newOpts struct {
	width  float64 // canvas width (0 = config)
	height float64 // canvas height (0 = config)
	force  bool    // overwrite an existing draft
}

func (c *CLI) newCommand() *cobra.Command {
	var opts newOpts

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start an empty layout",
		Long:  `Create an empty layout draft using the configured canvas and spot size.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNew(opts)
		},
	}

	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height (default from config)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing draft")

	return cmd
}

func (c *CLI) runNew(opts newOpts) error {
	if _, err := os.Stat(c.draftPath); err == nil && !opts.force {
		return errors.New(errors.ErrCodeInvalidInput, "%s already exists; use --force to start over", c.draftPath)
	}

	cfg := c.Config
	if opts.width > 0 {
		cfg.Canvas.Width = opts.width
	}
	if opts.height > 0 {
		cfg.Canvas.Height = opts.height
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	s := layout.New(cfg.LayoutOptions()...)
	if err := c.saveDraft(s); err != nil {
		return err
	}

	printSuccess("New %s × %s layout", formatNum(cfg.Canvas.Width), formatNum(cfg.Canvas.Height))
	printFile(c.draftPath)
	printNextStep("Add a spot", appName+" add")
	return nil
}

func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadDraft()
			if err != nil {
				return err
			}
			printLayout(s)
			return nil
		},
	}
}
