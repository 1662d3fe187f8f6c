// Package geometry provides the stateless 2D primitives behind lot layout
// validation.
//
// # Overview
//
// A parking spot is a fixed-size rectangle anchored at its un-rotated top-left
// corner and rotated about its own center. [Corners] turns such a pose into
// the four corner points of the rotated rectangle, and [Overlaps] decides
// whether two convex polygons share positive area using the Separating Axis
// Theorem.
//
// # Coordinates
//
// Coordinates follow screen conventions: x grows to the right and y grows
// downward. Rotation angles are given in degrees and applied as a standard
// 2D rotation, so a positive angle turns clockwise on screen.
//
// # Tolerance
//
// Rotating by multiples of 90° produces sine and cosine values that are not
// exactly 0 or 1 in floating point. All comparisons in this package allow a
// slack of [Epsilon] so that rectangles sharing an edge are reported as
// touching rather than overlapping, and a corner that sits on the canvas
// boundary counts as inside.
//
// # Example
//
//	pts := geometry.Corners(20, 20, 0, geometry.Size{W: 50, H: 100})
//	// pts = (20,20) (70,20) (70,120) (20,120)
//
//	other := geometry.Corners(70, 20, 0, geometry.Size{W: 50, H: 100})
//	geometry.Overlaps(pts[:], other[:]) // false: the rectangles only touch
package geometry
