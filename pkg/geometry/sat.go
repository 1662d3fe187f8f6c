package geometry

import "math"

// Overlaps reports whether two convex polygons share positive area.
//
// Every edge normal of both polygons is tried as a separating axis. Intervals
// that merely touch (max(a) == min(b)) do not count as overlapping, so
// rectangles sharing an edge or a corner are allowed to coexist.
func Overlaps(a, b []Point) bool {
	if len(a) < 3 || len(b) < 3 {
		return false
	}
	for _, poly := range [2][]Point{a, b} {
		for i := range poly {
			axis, ok := edgeNormal(poly[i], poly[(i+1)%len(poly)])
			if !ok {
				continue
			}
			minA, maxA := project(a, axis)
			minB, maxB := project(b, axis)
			if maxA <= minB+Epsilon || maxB <= minA+Epsilon {
				return false
			}
		}
	}
	return true
}

// edgeNormal returns the unit normal of the edge p→q.
// Degenerate edges yield ok == false.
func edgeNormal(p, q Point) (Point, bool) {
	edge := q.Sub(p)
	n := Point{X: -edge.Y, Y: edge.X}
	length := math.Hypot(n.X, n.Y)
	if length == 0 {
		return Point{}, false
	}
	return Point{X: n.X / length, Y: n.Y / length}, true
}

// project returns the interval covered by poly on axis.
func project(poly []Point, axis Point) (lo, hi float64) {
	lo = Dot(poly[0], axis)
	hi = lo
	for _, p := range poly[1:] {
		d := Dot(p, axis)
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return lo, hi
}
