// Package render draws parking-lot layouts.
//
// # Native SVG
//
// [SVG] writes a self-contained SVG document sized to the canvas: the canvas
// border, every spot as its rotated rectangle with the label at its center,
// and optionally the suggested next spot as a dashed ghost:
//
//	ghost, _ := state.Suggest()
//	svg := render.SVG(state, render.WithGhost(ghost))
//
// Spots that lie outside the canvas after a permissive shrink are drawn in
// the warning colour so they are easy to find.
//
// # Graphviz
//
// [DOT] describes the same layout as a Graphviz graph with every node pinned
// to its spot's center, and [RenderGraphviz] renders it in-process with the
// neato engine to SVG or PNG:
//
//	dot := render.DOT(state)
//	png, err := render.RenderGraphviz(ctx, dot, render.FormatPNG)
//
// # Dependencies
//
// Graphviz rendering uses [github.com/goccy/go-graphviz], which bundles
// Graphviz as WebAssembly; no system installation is required.
package render
