package layout

import (
	"fmt"

	"github.com/matzehuels/lotplan/pkg/geometry"
)

// Real-world spot dimensions and the canvas scale.
const (
	SpotWidthMeters       = 2.5
	SpotLengthMeters      = 5.0
	DefaultPixelsPerMeter = 20.0
)

// Defaults applied by [New].
const (
	DefaultCanvasWidth  = 800.0
	DefaultCanvasHeight = 600.0

	// DefaultGap separates a single spot from its suggested neighbour.
	DefaultGap = 10.0

	// DefaultGridSize is N for the N×N grid scan.
	DefaultGridSize = 20

	// DefaultRotateStep is the rotation applied by one rotate action.
	DefaultRotateStep = 45.0
)

// NoExclude is passed to [Check] when no committed spot should be skipped.
// Spot ids start at 1, so 0 never matches.
const NoExclude = 0

// Canvas is the bounded area representing the physical lot.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Pose is a position plus rotation. A bare Pose is a candidate placement: it
// has no id and is never stored.
type Pose struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// Corners returns the rotated corners of a spot of the given size at p.
func (p Pose) Corners(size geometry.Size) [4]geometry.Point {
	return geometry.Corners(p.X, p.Y, p.Rotation, size)
}

// Spot is a committed parking space.
type Spot struct {
	ID       int     `json:"id"`
	Label    string  `json:"label"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// Pose returns the spot's position and rotation.
func (s Spot) Pose() Pose { return Pose{X: s.X, Y: s.Y, Rotation: s.Rotation} }

// Corners returns the rotated corners of s for the given spot size.
func (s Spot) Corners(size geometry.Size) [4]geometry.Point {
	return geometry.Corners(s.X, s.Y, s.Rotation, size)
}

func (s Spot) withPose(p Pose) Spot {
	s.X, s.Y, s.Rotation = p.X, p.Y, p.Rotation
	return s
}

// DefaultLabel is the label given to a newly added spot.
func DefaultLabel(id int) string { return fmt.Sprintf("P%d", id) }

// SpotSize converts real-world spot dimensions into canvas units.
func SpotSize(widthMeters, lengthMeters, pixelsPerMeter float64) geometry.Size {
	return geometry.Size{W: widthMeters * pixelsPerMeter, H: lengthMeters * pixelsPerMeter}
}

// DefaultSpotSize is the 2.5 m × 5.0 m spot at the default scale (50×100).
func DefaultSpotSize() geometry.Size {
	return SpotSize(SpotWidthMeters, SpotLengthMeters, DefaultPixelsPerMeter)
}
