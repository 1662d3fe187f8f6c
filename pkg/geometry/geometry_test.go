package geometry

import (
	"math"
	"testing"
)

var spotSize = Size{W: 50, H: 100}

func approxEqual(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func TestCorners(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		rotation float64
		want     [4]Point
	}{
		{
			name: "unrotated",
			x:    20, y: 20,
			want: [4]Point{{20, 20}, {70, 20}, {70, 120}, {20, 120}},
		},
		{
			name: "quarter turn about center",
			x:    20, y: 20, rotation: 90,
			want: [4]Point{{95, 45}, {95, 95}, {-5, 95}, {-5, 45}},
		},
		{
			name: "half turn swaps corners",
			x:    0, y: 0, rotation: 180,
			want: [4]Point{{50, 100}, {0, 100}, {0, 0}, {50, 0}},
		},
		{
			name: "full turn is identity",
			x:    10, y: 30, rotation: 360,
			want: [4]Point{{10, 30}, {60, 30}, {60, 130}, {10, 130}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Corners(tt.x, tt.y, tt.rotation, spotSize)
			for i := range got {
				if !approxEqual(got[i], tt.want[i]) {
					t.Errorf("corner %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCornersPreserveCenter(t *testing.T) {
	for _, rot := range []float64{0, 45, 90, 135, 180, 225, 270, 315, 17.5} {
		pts := Corners(100, 100, rot, spotSize)
		cx := (pts[0].X + pts[2].X) / 2
		cy := (pts[0].Y + pts[2].Y) / 2
		if math.Abs(cx-125) > 1e-9 || math.Abs(cy-150) > 1e-9 {
			t.Errorf("rotation %v: center = (%v, %v), want (125, 150)", rot, cx, cy)
		}
	}
}

func TestOverlaps(t *testing.T) {
	square := Size{W: 10, H: 10}
	tests := []struct {
		name string
		a, b [4]Point
		want bool
	}{
		{
			name: "identical",
			a:    Corners(0, 0, 0, square),
			b:    Corners(0, 0, 0, square),
			want: true,
		},
		{
			name: "partial overlap",
			a:    Corners(0, 0, 0, square),
			b:    Corners(5, 5, 0, square),
			want: true,
		},
		{
			name: "shared edge is touching",
			a:    Corners(0, 0, 0, square),
			b:    Corners(10, 0, 0, square),
			want: false,
		},
		{
			name: "shared corner is touching",
			a:    Corners(0, 0, 0, square),
			b:    Corners(10, 10, 0, square),
			want: false,
		},
		{
			name: "apart",
			a:    Corners(0, 0, 0, square),
			b:    Corners(30, 0, 0, square),
			want: false,
		},
		{
			name: "rotated diamond clips neighbour",
			a:    Corners(0, 0, 45, square),
			b:    Corners(12, 0, 0, square),
			want: true,
		},
		{
			name: "bounding boxes intersect but shapes do not",
			a:    Corners(0, 0, 45, square),
			b:    Corners(11, 11, 45, square),
			want: false,
		},
		{
			name: "containment",
			a:    Corners(0, 0, 0, Size{W: 100, H: 100}),
			b:    Corners(40, 40, 30, square),
			want: true,
		},
		{
			name: "touching after quarter turns",
			a:    Corners(0, 0, 90, square),
			b:    Corners(10, 0, 270, square),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a[:], tt.b[:]); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := Overlaps(tt.b[:], tt.a[:]); got != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlapsDegenerate(t *testing.T) {
	a := Corners(0, 0, 0, spotSize)
	if Overlaps(a[:], []Point{{1, 1}, {2, 2}}) {
		t.Error("a polygon with fewer than three points cannot overlap")
	}
}

func TestInside(t *testing.T) {
	tests := []struct {
		name string
		pts  [4]Point
		want bool
	}{
		{"flush with origin", Corners(0, 0, 0, spotSize), true},
		{"flush with far edge", Corners(450, 400, 0, spotSize), true},
		{"past right edge", Corners(451, 0, 0, spotSize), false},
		{"negative y", Corners(0, -1, 0, spotSize), false},
		{"rotation pushes corner out", Corners(0, 0, 45, spotSize), false},
		{"quarter turn fits", Corners(25, 0, 90, spotSize), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Inside(tt.pts[:], 500, 500); got != tt.want {
				t.Errorf("Inside() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{45, 45},
		{360, 0},
		{405, 45},
		{-45, 315},
		{-360, 0},
		{720.5, 0.5},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBounds(t *testing.T) {
	pts := Corners(20, 20, 90, spotSize)
	b := Bounds(pts[:])
	want := Rect{X: -5, Y: 45, W: 100, H: 50}
	if math.Abs(b.X-want.X) > 1e-6 || math.Abs(b.Y-want.Y) > 1e-6 ||
		math.Abs(b.W-want.W) > 1e-6 || math.Abs(b.H-want.H) > 1e-6 {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}
	if got := Bounds(nil); got != (Rect{}) {
		t.Errorf("Bounds(nil) = %+v, want zero", got)
	}
}
