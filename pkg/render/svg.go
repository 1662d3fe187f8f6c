package render

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/lotplan/pkg/geometry"
	"github.com/matzehuels/lotplan/pkg/layout"
)

// Colours used by the native renderer.
const (
	colorBackground = "#f7f7f5"
	colorBorder     = "#333333"
	colorSpot       = "#ffffff"
	colorStroke     = "#1f4e79"
	colorSelected   = "#f2a900"
	colorWarning    = "#c0392b"
	colorGhost      = "#7f8c8d"
)

const svgStyle = `
    .spot { fill: ` + colorSpot + `; stroke: ` + colorStroke + `; stroke-width: 2; }
    .spot.selected { stroke: ` + colorSelected + `; stroke-width: 3; }
    .spot.violation { stroke: ` + colorWarning + `; fill: #fdecea; }
    .ghost { fill: none; stroke: ` + colorGhost + `; stroke-width: 2; stroke-dasharray: 6 4; }
    .label { font-family: Helvetica, Arial, sans-serif; fill: #222222; text-anchor: middle; dominant-baseline: central; }`

// Option configures [SVG].
type Option func(*svgRenderer)

type svgRenderer struct {
	ghost    *layout.Pose
	selected int
	margin   float64
}

// WithGhost draws pose as the dashed suggestion outline.
func WithGhost(pose layout.Pose) Option {
	return func(r *svgRenderer) { r.ghost = &pose }
}

// WithSelected highlights the spot with the given id.
func WithSelected(id int) Option { return func(r *svgRenderer) { r.selected = id } }

// WithMargin adds blank space around the canvas.
func WithMargin(m float64) Option { return func(r *svgRenderer) { r.margin = max(0, m) } }

// SVG renders the layout as an SVG document.
func SVG(s *layout.State, opts ...Option) []byte {
	r := svgRenderer{margin: 10}
	for _, opt := range opts {
		opt(&r)
	}

	canvas, size := s.Canvas(), s.SpotSize()
	w, h := canvas.Width+2*r.margin, canvas.Height+2*r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgStyle)
	fmt.Fprintf(&buf, `  <g transform="translate(%.1f %.1f)">`+"\n", r.margin, r.margin)
	fmt.Fprintf(&buf, `  <rect class="canvas" x="0" y="0" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
		canvas.Width, canvas.Height, colorBackground, colorBorder)

	violations := s.Violations()
	for _, sp := range s.Spots() {
		class := "spot"
		if sp.ID == r.selected {
			class += " selected"
		}
		if slices.Contains(violations, sp.ID) {
			class += " violation"
		}
		renderSpot(&buf, sp, size, class)
	}

	if r.ghost != nil {
		pts := r.ghost.Corners(size)
		fmt.Fprintf(&buf, `  <polygon class="ghost" points="%s"/>`+"\n", polygonPoints(pts))
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderSpot(buf *bytes.Buffer, sp layout.Spot, size geometry.Size, class string) {
	pts := sp.Corners(size)
	cx, cy := sp.X+size.W/2, sp.Y+size.H/2
	label := truncateLabel(size.W, sp.Label)

	fmt.Fprintf(buf, `  <g id="spot-%d">`+"\n", sp.ID)
	fmt.Fprintf(buf, `    <polygon class="%s" points="%s"/>`+"\n", class, polygonPoints(pts))
	fmt.Fprintf(buf, `    <text class="label" x="%.1f" y="%.1f" font-size="%.1f" transform="rotate(%g %.1f %.1f)">%s</text>`+"\n",
		cx, cy, fontSize(size.W, label), sp.Rotation, cx, cy, escapeXML(label))
	buf.WriteString("  </g>\n")
}

func polygonPoints(pts [4]geometry.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}
