package layout

import (
	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/geometry"
)

// Suggest proposes the next spot's pose (the "ghost").
//
// With one spot the ghost sits one spot width plus the gap to its right. With
// two or more, the positional delta between the last two spots in creation
// order is applied once more to the last spot, keeping its rotation. The
// ghost must itself be a legal placement; otherwise NO_SUGGESTION is returned
// and no alternative is searched for.
func (s *State) Suggest() (Pose, error) {
	var ghost Pose
	switch n := len(s.spots); n {
	case 0:
		return Pose{}, errors.New(errors.ErrCodeNoSuggestion, "no spots to continue from")
	case 1:
		last := s.spots[0]
		ghost = Pose{X: last.X + s.size.W + s.gap, Y: last.Y, Rotation: last.Rotation}
	default:
		prev, last := s.spots[n-2], s.spots[n-1]
		ghost = Pose{
			X:        last.X + (last.X - prev.X),
			Y:        last.Y + (last.Y - prev.Y),
			Rotation: last.Rotation,
		}
	}
	if err := s.Check(ghost, NoExclude); err != nil {
		return Pose{}, errors.Wrap(errors.ErrCodeNoSuggestion, err, "pattern continuation at (%.1f, %.1f) is not placeable", ghost.X, ghost.Y)
	}
	return ghost, nil
}

// AcceptSuggestion commits the current ghost as a new spot.
func (s *State) AcceptSuggestion() (Spot, error) {
	ghost, err := s.Suggest()
	if err != nil {
		return Spot{}, s.reject(OpAccept, 0, err)
	}
	return s.addAt(OpAccept, ghost)
}

// GridScan searches an n×n raster of unrotated candidate positions, stepping
// one spot width across and one spot length down from the canvas origin, and
// returns the first legal one in row-major order.
func GridScan(spots []Spot, canvas Canvas, size geometry.Size, n int) (Pose, bool) {
	for row := 0; row < n; row++ {
		y := float64(row) * size.H
		if y+size.H > canvas.Height+geometry.Epsilon {
			break
		}
		for col := 0; col < n; col++ {
			x := float64(col) * size.W
			if x+size.W > canvas.Width+geometry.Epsilon {
				break
			}
			pose := Pose{X: x, Y: y}
			if IsValid(pose, spots, canvas, size, NoExclude) {
				return pose, true
			}
		}
	}
	return Pose{}, false
}
