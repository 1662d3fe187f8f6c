package layout

import (
	"slices"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/geometry"
	"github.com/matzehuels/lotplan/pkg/observability"
)

// Operation names reported to observability hooks.
const (
	OpAdd     = "add"
	OpAccept  = "accept"
	OpMove    = "move"
	OpRotate  = "rotate"
	OpRelabel = "relabel"
	OpRemove  = "remove"
	OpResize  = "resize"
)

// State owns a layout's committed spots and its next-id counter.
// All mutations go through its methods; each one validates before it commits.
type State struct {
	canvas       Canvas
	size         geometry.Size
	gap          float64
	gridSize     int
	strictResize bool

	spots  []Spot
	nextID int
}

// Option configures a [State].
type Option func(*State)

// WithCanvas sets the initial canvas size.
func WithCanvas(width, height float64) Option {
	return func(s *State) { s.canvas = Canvas{Width: width, Height: height} }
}

// WithSpotSize sets the layout-wide spot dimensions in canvas units.
func WithSpotSize(size geometry.Size) Option {
	return func(s *State) { s.size = size }
}

// WithGap sets the spacing used when suggesting a neighbour for a lone spot.
func WithGap(gap float64) Option {
	return func(s *State) { s.gap = gap }
}

// WithGridSize sets N for the N×N grid scan used by [State.Add].
func WithGridSize(n int) Option {
	return func(s *State) { s.gridSize = n }
}

// WithStrictResize makes [State.ResizeCanvas] reject shrinks that would leave
// an existing spot outside the canvas.
func WithStrictResize(strict bool) Option {
	return func(s *State) { s.strictResize = strict }
}

// New creates an empty layout. Unset options fall back to the package defaults.
func New(opts ...Option) *State {
	s := &State{
		canvas:   Canvas{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight},
		size:     DefaultSpotSize(),
		gap:      DefaultGap,
		gridSize: DefaultGridSize,
		nextID:   1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gridSize < 1 {
		s.gridSize = DefaultGridSize
	}
	return s
}

// Canvas returns the current canvas.
func (s *State) Canvas() Canvas { return s.canvas }

// SpotSize returns the layout-wide spot dimensions.
func (s *State) SpotSize() geometry.Size { return s.size }

// Gap returns the neighbour spacing used by suggestions.
func (s *State) Gap() float64 { return s.gap }

// GridSize returns N for the N×N grid scan.
func (s *State) GridSize() int { return s.gridSize }

// StrictResize reports whether shrinking below existing spots is rejected.
func (s *State) StrictResize() bool { return s.strictResize }

// NextID returns the id the next added spot will receive.
func (s *State) NextID() int { return s.nextID }

// Len returns the number of committed spots.
func (s *State) Len() int { return len(s.spots) }

// Spots returns a copy of the committed spots in creation order.
func (s *State) Spots() []Spot { return slices.Clone(s.spots) }

// Spot returns the spot with the given id.
func (s *State) Spot(id int) (Spot, bool) {
	i := s.index(id)
	if i < 0 {
		return Spot{}, false
	}
	return s.spots[i], true
}

func (s *State) index(id int) int {
	return slices.IndexFunc(s.spots, func(sp Spot) bool { return sp.ID == id })
}

// Check validates candidate against the current layout, ignoring exclude.
func (s *State) Check(candidate Pose, exclude int) error {
	return Check(candidate, s.spots, s.canvas, s.size, exclude)
}

// AddAt commits a new spot at pose with a fresh id and the default label.
// An illegal pose is rejected and nothing is added.
func (s *State) AddAt(pose Pose) (Spot, error) {
	return s.addAt(OpAdd, pose)
}

func (s *State) addAt(op string, pose Pose) (Spot, error) {
	if err := validatePose(pose); err != nil {
		return Spot{}, s.reject(op, 0, err)
	}
	pose.Rotation = geometry.NormalizeAngle(pose.Rotation)
	if err := s.Check(pose, NoExclude); err != nil {
		return Spot{}, s.reject(op, 0, err)
	}

	id := s.nextID
	s.nextID++
	sp := Spot{ID: id, Label: DefaultLabel(id)}.withPose(pose)
	s.spots = append(s.spots, sp)
	observability.Layout().OnCommit(op, id)
	return sp, nil
}

// Add is the explicit "add spot" action: it commits a spot in the first free
// grid cell. If the scan finds no room it reports CAPACITY_EXCEEDED.
func (s *State) Add() (Spot, error) {
	pose, ok := GridScan(s.spots, s.canvas, s.size, s.gridSize)
	if !ok {
		err := errors.New(errors.ErrCodeCapacityExceeded,
			"no free position for a %gx%g spot on the %gx%g canvas; enlarge the canvas",
			s.size.W, s.size.H, s.canvas.Width, s.canvas.Height)
		return Spot{}, s.reject(OpAdd, 0, err)
	}
	return s.addAt(OpAdd, pose)
}

// Move repositions spot id to (x, y), keeping its rotation.
// On rejection the spot keeps its previous position.
func (s *State) Move(id int, x, y float64) error {
	i := s.index(id)
	if i < 0 {
		return s.reject(OpMove, id, notFound(id))
	}
	pose := s.spots[i].Pose()
	pose.X, pose.Y = x, y
	return s.update(OpMove, i, pose)
}

// Rotate turns spot id by delta degrees about its center. The stored angle is
// normalized into [0, 360) so repeated rotation never drifts.
func (s *State) Rotate(id int, delta float64) error {
	i := s.index(id)
	if i < 0 {
		return s.reject(OpRotate, id, notFound(id))
	}
	if err := errors.ValidateCoordinate("rotation", delta); err != nil {
		return s.reject(OpRotate, id, err)
	}
	pose := s.spots[i].Pose()
	pose.Rotation = geometry.NormalizeAngle(pose.Rotation + delta)
	return s.update(OpRotate, i, pose)
}

func (s *State) update(op string, i int, pose Pose) error {
	id := s.spots[i].ID
	if err := validatePose(pose); err != nil {
		return s.reject(op, id, err)
	}
	if err := s.Check(pose, id); err != nil {
		return s.reject(op, id, err)
	}
	s.spots[i] = s.spots[i].withPose(pose)
	observability.Layout().OnCommit(op, id)
	return nil
}

// Relabel changes a spot's label. Labels are never geometrically validated
// and need not be unique.
func (s *State) Relabel(id int, label string) error {
	i := s.index(id)
	if i < 0 {
		return s.reject(OpRelabel, id, notFound(id))
	}
	if err := errors.ValidateLabel(label); err != nil {
		return s.reject(OpRelabel, id, err)
	}
	s.spots[i].Label = label
	observability.Layout().OnCommit(OpRelabel, id)
	return nil
}

// Remove deletes a spot. Remaining ids and the next-id counter are untouched.
func (s *State) Remove(id int) error {
	i := s.index(id)
	if i < 0 {
		return s.reject(OpRemove, id, notFound(id))
	}
	s.spots = slices.Delete(s.spots, i, i+1)
	observability.Layout().OnCommit(OpRemove, id)
	return nil
}

// ResizeCanvas changes the canvas size. Existing spots are not re-validated
// unless the state was created with [WithStrictResize], in which case a
// shrink that strands any spot is rejected.
func (s *State) ResizeCanvas(width, height float64) error {
	if err := errors.ValidateCanvas(width, height); err != nil {
		return s.reject(OpResize, 0, err)
	}
	next := Canvas{Width: width, Height: height}
	if s.strictResize {
		for _, sp := range s.spots {
			pts := sp.Corners(s.size)
			if !geometry.Inside(pts[:], next.Width, next.Height) {
				err := errors.New(errors.ErrCodeOutOfBounds,
					"resizing to %gx%g would leave spot %d (%s) outside the canvas", width, height, sp.ID, sp.Label)
				return s.reject(OpResize, 0, err)
			}
		}
	}
	s.canvas = next
	observability.Layout().OnCommit(OpResize, 0)
	return nil
}

// Violations returns the ids of spots that no longer fit inside the canvas.
// This only happens after a permissive shrink.
func (s *State) Violations() []int {
	var ids []int
	for _, sp := range s.spots {
		pts := sp.Corners(s.size)
		if !geometry.Inside(pts[:], s.canvas.Width, s.canvas.Height) {
			ids = append(ids, sp.ID)
		}
	}
	return ids
}

func (s *State) reject(op string, id int, err error) error {
	observability.Layout().OnReject(op, id, string(errors.GetCode(err)))
	return err
}

func notFound(id int) error {
	return errors.New(errors.ErrCodeSpotNotFound, "spot %d not found", id)
}

func validatePose(p Pose) error {
	if err := errors.ValidateCoordinate("x", p.X); err != nil {
		return err
	}
	if err := errors.ValidateCoordinate("y", p.Y); err != nil {
		return err
	}
	return errors.ValidateCoordinate("rotation", p.Rotation)
}
