package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/layout"
)

// Output formats accepted by [RenderGraphviz].
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// pointsPerInch converts canvas units, drawn as points, to Graphviz inches.
const pointsPerInch = 72.0

// DOT describes the layout as a Graphviz graph for the neato engine.
//
// Every spot becomes a fixed-size four-sided polygon pinned at its center and
// turned by its rotation. The canvas is a dashed box pinned the same way.
// Graphviz places y upwards, so y coordinates are flipped.
func DOT(s *layout.State) string {
	canvas, size := s.Canvas(), s.SpotSize()
	flip := func(y float64) float64 { return canvas.Height - y }

	var buf bytes.Buffer
	buf.WriteString("graph lot {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  node [fixedsize=true, fontname=\"Helvetica\", fontsize=12, style=filled, fillcolor=white];\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  canvas [shape=box, style=dashed, label=\"\", width=%s, height=%s, pos=\"%s,%s!\"];\n",
		inches(canvas.Width), inches(canvas.Height),
		num(canvas.Width/2), num(flip(canvas.Height/2)))

	for _, sp := range s.Spots() {
		cx, cy := sp.X+size.W/2, flip(sp.Y+size.H/2)
		fmt.Fprintf(&buf, "  spot%d [shape=polygon, sides=4, label=%q, width=%s, height=%s, orientation=%s, pos=\"%s,%s!\"];\n",
			sp.ID, sp.Label, inches(size.W), inches(size.H), num(sp.Rotation), num(cx), num(cy))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func inches(v float64) string { return num(v / pointsPerInch) }

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// RenderGraphviz renders DOT source with the neato engine.
// format is [FormatSVG] or [FormatPNG].
func RenderGraphviz(ctx context.Context, dot string, format string) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported graphviz format %q (use svg or png)", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg element with a plain
// pixel-sized one so the output scales like the native renderer's.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
