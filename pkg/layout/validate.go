package layout

import (
	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/geometry"
)

// Check decides whether candidate may be committed next to spots on canvas.
// The spot whose id equals exclude is ignored, which lets a moved or rotated
// spot be tested against everything but itself.
//
// It returns nil on acceptance, an OUT_OF_BOUNDS error when a rotated corner
// leaves the canvas, and an OVERLAP error naming the first spot hit.
func Check(candidate Pose, spots []Spot, canvas Canvas, size geometry.Size, exclude int) error {
	pts := candidate.Corners(size)
	if !geometry.Inside(pts[:], canvas.Width, canvas.Height) {
		b := geometry.Bounds(pts[:])
		return errors.New(errors.ErrCodeOutOfBounds,
			"spot at (%.1f, %.1f) rotated %g° spans (%.1f, %.1f)-(%.1f, %.1f), outside the %gx%g canvas",
			candidate.X, candidate.Y, candidate.Rotation, b.X, b.Y, b.X+b.W, b.Y+b.H, canvas.Width, canvas.Height)
	}
	for _, s := range spots {
		if s.ID == exclude {
			continue
		}
		other := s.Corners(size)
		if geometry.Overlaps(pts[:], other[:]) {
			return errors.New(errors.ErrCodeOverlap, "overlaps spot %d (%s)", s.ID, s.Label)
		}
	}
	return nil
}

// IsValid reports whether candidate is in bounds and overlaps no spot other
// than exclude.
func IsValid(candidate Pose, spots []Spot, canvas Canvas, size geometry.Size, exclude int) bool {
	return Check(candidate, spots, canvas, size, exclude) == nil
}
