package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/layout"
	"github.com/matzehuels/lotplan/pkg/render"
)

const (
	engineNative   = "native"   // built-in SVG writer
	engineGraphviz = "graphviz" // neato via go-graphviz
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path (default: draft name with the format's extension)
	engine  string // "native" or "graphviz"
	format  string // "svg" or "png"
	ghost   bool   // draw the suggested next spot
	dotOnly bool   // write DOT source instead of rendering
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{engine: engineNative, format: render.FormatSVG, ghost: true}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the layout as SVG or PNG",
		Long: `Draw the layout. The native engine writes SVG directly; the graphviz engine
renders with neato and can also produce PNG.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateRenderOpts(&opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: draft name with format extension)")
	cmd.Flags().StringVar(&opts.engine, "engine", opts.engine, "render engine: native (default), graphviz")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format: svg (default), png (graphviz only)")
	cmd.Flags().BoolVar(&opts.ghost, "ghost", opts.ghost, "draw the suggested next spot (native only)")
	cmd.Flags().BoolVar(&opts.dotOnly, "dot", false, "write Graphviz DOT source instead of an image")

	return cmd
}

func validateRenderOpts(opts *renderOpts) error {
	opts.engine = strings.ToLower(opts.engine)
	opts.format = strings.ToLower(opts.format)
	switch opts.engine {
	case engineNative, engineGraphviz:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid engine: %s (must be 'native' or 'graphviz')", opts.engine)
	}
	switch opts.format {
	case render.FormatSVG:
	case render.FormatPNG:
		if opts.engine != engineGraphviz && !opts.dotOnly {
			return errors.New(errors.ErrCodeInvalidInput, "png output requires --engine graphviz")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be 'svg' or 'png')", opts.format)
	}
	return nil
}

func (c *CLI) runRender(ctx context.Context, opts renderOpts) error {
	s, err := c.loadDraft()
	if err != nil {
		return err
	}

	ext := opts.format
	if opts.dotOnly {
		ext = "dot"
	}
	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(c.draftPath, filepath.Ext(c.draftPath)) + "." + ext
	}

	data, err := c.renderBytes(ctx, s, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	printSuccess("Rendered %d spot(s)", s.Len())
	printFile(out)
	return nil
}

func (c *CLI) renderBytes(ctx context.Context, s *layout.State, opts renderOpts) ([]byte, error) {
	if opts.dotOnly {
		return []byte(render.DOT(s)), nil
	}
	if opts.engine == engineGraphviz {
		spin := newSpinnerWithContext(ctx, "Rendering with graphviz...")
		spin.Start()
		defer spin.Stop()
		return render.RenderGraphviz(ctx, render.DOT(s), opts.format)
	}

	var ropts []render.Option
	if opts.ghost {
		if ghost, err := s.Suggest(); err == nil {
			ropts = append(ropts, render.WithGhost(ghost))
		}
	}
	return render.SVG(s, ropts...), nil
}
