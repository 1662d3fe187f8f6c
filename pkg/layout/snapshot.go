package layout

import (
	"slices"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/geometry"
)

// Snapshot is a self-contained copy of a layout, suitable for saving a draft.
type Snapshot struct {
	Canvas       Canvas        `json:"canvas"`
	SpotSize     geometry.Size `json:"spot_size"`
	Gap          float64       `json:"gap"`
	GridSize     int           `json:"grid_size"`
	StrictResize bool          `json:"strict_resize,omitempty"`
	NextID       int           `json:"next_id"`
	Spots        []Spot        `json:"spots"`
}

// Snapshot captures the current state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Canvas:       s.canvas,
		SpotSize:     s.size,
		Gap:          s.gap,
		GridSize:     s.gridSize,
		StrictResize: s.strictResize,
		NextID:       s.nextID,
		Spots:        slices.Clone(s.spots),
	}
}

// Restore rebuilds a State from a snapshot.
//
// Ids must be positive and distinct, labels must pass the same checks as
// [State.Relabel], and no two spots may overlap. Spots
// outside the canvas are kept, since a permissive resize can legitimately
// produce them. The next-id counter is raised above the largest id if needed
// so ids are never reused.
func Restore(snap Snapshot) (*State, error) {
	if err := errors.ValidateCanvas(snap.Canvas.Width, snap.Canvas.Height); err != nil {
		return nil, err
	}
	if snap.SpotSize.W <= 0 || snap.SpotSize.H <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "spot size must be positive (got %gx%g)", snap.SpotSize.W, snap.SpotSize.H)
	}

	s := New(
		WithCanvas(snap.Canvas.Width, snap.Canvas.Height),
		WithSpotSize(snap.SpotSize),
		WithGap(snap.Gap),
		WithGridSize(snap.GridSize),
		WithStrictResize(snap.StrictResize),
	)

	seen := make(map[int]bool, len(snap.Spots))
	maxID := 0
	for i, sp := range snap.Spots {
		if sp.ID <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "spot %d: id must be positive (got %d)", i, sp.ID)
		}
		if seen[sp.ID] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate spot id %d", sp.ID)
		}
		seen[sp.ID] = true
		if err := validatePose(sp.Pose()); err != nil {
			return nil, err
		}
		sp.Rotation = geometry.NormalizeAngle(sp.Rotation)
		if sp.Label == "" {
			sp.Label = DefaultLabel(sp.ID)
		}
		if err := errors.ValidateLabel(sp.Label); err != nil {
			return nil, errors.New(errors.ErrCodeInvalidLabel, "spot %d: %s", sp.ID, errors.UserMessage(err))
		}
		pts := sp.Corners(s.size)
		for _, other := range s.spots {
			if op := other.Corners(s.size); geometry.Overlaps(pts[:], op[:]) {
				return nil, errors.New(errors.ErrCodeOverlap, "spot %d overlaps spot %d", sp.ID, other.ID)
			}
		}
		s.spots = append(s.spots, sp)
		maxID = max(maxID, sp.ID)
	}
	s.nextID = max(snap.NextID, maxID+1)
	return s, nil
}

