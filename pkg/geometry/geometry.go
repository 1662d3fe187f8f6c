package geometry

import "math"

// Epsilon is the tolerance used for interval and containment comparisons.
const Epsilon = 1e-9

// Point is a 2D point or vector in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dot returns the dot product of p and q.
func Dot(p, q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Size is a width/height pair.
type Size struct {
	W float64 `json:"width" toml:"width"`
	H float64 `json:"height" toml:"height"`
}

// Rect is an axis-aligned rectangle given by its min corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

// Radians converts an angle in degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// NormalizeAngle maps deg into [0, 360).
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// Corners returns the corners of a size.W×size.H rectangle whose un-rotated
// top-left corner is (x, y), rotated by rotation degrees about its center.
// The order is top-left, top-right, bottom-right, bottom-left before rotation.
func Corners(x, y, rotation float64, size Size) [4]Point {
	cx := x + size.W/2
	cy := y + size.H/2
	hw, hh := size.W/2, size.H/2

	theta := Radians(rotation)
	cos, sin := math.Cos(theta), math.Sin(theta)

	offsets := [4]Point{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var pts [4]Point
	for i, o := range offsets {
		pts[i] = Point{
			X: cx + o.X*cos - o.Y*sin,
			Y: cy + o.X*sin + o.Y*cos,
		}
	}
	return pts
}

// Inside reports whether every point lies within [0, width] × [0, height].
func Inside(pts []Point, width, height float64) bool {
	for _, p := range pts {
		if p.X < -Epsilon || p.Y < -Epsilon || p.X > width+Epsilon || p.Y > height+Epsilon {
			return false
		}
	}
	return true
}

// Bounds returns the axis-aligned bounding box of pts.
func Bounds(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
