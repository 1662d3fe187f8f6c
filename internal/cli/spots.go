package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/layout"
)

// addOpts holds the command-line flags for the add command.
type addOpts struct {
	at       string  // "x,y"; empty means grid scan
	rotation float64 // rotation for --at
}

func (c *CLI) addCommand() *cobra.Command {
	var opts addOpts

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a spot",
		Long: `Add a spot at an explicit position with --at, or in the first free cell of
the placement grid when no position is given.`,
		Example: `  lotplan add
  lotplan add --at 120,40 --rotation 90`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAdd(opts)
		},
	}

	cmd.Flags().StringVar(&opts.at, "at", "", "position as x,y (default: first free grid cell)")
	cmd.Flags().Float64Var(&opts.rotation, "rotation", 0, "rotation in degrees (with --at)")

	return cmd
}

func (c *CLI) runAdd(opts addOpts) error {
	var sp layout.Spot
	_, err := c.editDraft(func(s *layout.State) error {
		var err error
		if opts.at == "" {
			sp, err = s.Add()
			return err
		}
		x, y, err := parsePoint(opts.at)
		if err != nil {
			return err
		}
		sp, err = s.AddAt(layout.Pose{X: x, Y: y, Rotation: opts.rotation})
		return err
	})
	if errors.Is(err, errors.ErrCodeCapacityExceeded) {
		printWarning("The canvas is full")
		printNextStep("Enlarge it", appName+" resize <width> <height>")
	}
	if err != nil {
		return err
	}
	printSuccess("Added %s at %s", StyleHighlight.Render(sp.Label), formatPose(sp.Pose()))
	return nil
}

func (c *CLI) suggestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Show where the next spot would go",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadDraft()
			if err != nil {
				return err
			}
			ghost, err := s.Suggest()
			if errors.Is(err, errors.ErrCodeNoSuggestion) {
				printInfo("No suggestion: %s", errors.UserMessage(err))
				return nil
			}
			if err != nil {
				return err
			}
			printInfo("Next spot %s", StyleHighlight.Render(formatPose(ghost)))
			printNextStep("Place it", appName+" accept")
			return nil
		},
	}
}

func (c *CLI) acceptCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "accept",
		Short: "Place a spot at the suggested position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sp layout.Spot
			_, err := c.editDraft(func(s *layout.State) error {
				var err error
				sp, err = s.AcceptSuggestion()
				return err
			})
			if err != nil {
				return err
			}
			printSuccess("Added %s at %s", StyleHighlight.Render(sp.Label), formatPose(sp.Pose()))
			return nil
		},
	}
}

func (c *CLI) moveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <x> <y>",
		Short: "Move a spot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			x, err := parseNumber("x", args[1])
			if err != nil {
				return err
			}
			y, err := parseNumber("y", args[2])
			if err != nil {
				return err
			}
			s, err := c.editDraft(func(s *layout.State) error { return s.Move(id, x, y) })
			if err != nil {
				return err
			}
			printSpotResult("Moved", s, id)
			return nil
		},
	}
}

func (c *CLI) rotateCommand() *cobra.Command {
	by := layout.DefaultRotateStep

	cmd := &cobra.Command{
		Use:   "rotate <id>",
		Short: "Rotate a spot about its center",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := c.editDraft(func(s *layout.State) error { return s.Rotate(id, by) })
			if err != nil {
				return err
			}
			printSpotResult("Rotated", s, id)
			return nil
		},
	}

	cmd.Flags().Float64Var(&by, "by", by, "degrees to rotate by (negative turns the other way)")
	return cmd
}

func (c *CLI) relabelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "relabel <id> <label>",
		Short: "Rename a spot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := c.editDraft(func(s *layout.State) error { return s.Relabel(id, args[1]) })
			if err != nil {
				return err
			}
			printSpotResult("Relabelled", s, id)
			return nil
		},
	}
}

func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a spot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := c.editDraft(func(s *layout.State) error { return s.Remove(id) }); err != nil {
				return err
			}
			printSuccess("Removed spot %d", id)
			return nil
		},
	}
}

func (c *CLI) resizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resize <width> <height>",
		Short: "Change the canvas size",
		Long: `Change the canvas size. Spots that no longer fit are kept and reported,
unless strict_resize is enabled, in which case such a shrink is refused.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := parseNumber("width", args[0])
			if err != nil {
				return err
			}
			h, err := parseNumber("height", args[1])
			if err != nil {
				return err
			}
			s, err := c.editDraft(func(s *layout.State) error { return s.ResizeCanvas(w, h) })
			if err != nil {
				return err
			}
			printSuccess("Canvas is now %s × %s", formatNum(w), formatNum(h))
			printViolations(s)
			return nil
		},
	}
}

func printSpotResult(verb string, s *layout.State, id int) {
	sp, _ := s.Spot(id)
	printSuccess("%s %s to %s", verb, StyleHighlight.Render(sp.Label), formatPose(sp.Pose()))
}

// =============================================================================
// Argument Parsing
// =============================================================================

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "spot id must be a positive integer (got %q)", s)
	}
	return id, nil
}

func parseNumber(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a number (got %q)", name, s)
	}
	return v, nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "position must be x,y (got %q)", s)
	}
	x, err := parseNumber("x", xs)
	if err != nil {
		return 0, 0, err
	}
	y, err := parseNumber("y", ys)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
