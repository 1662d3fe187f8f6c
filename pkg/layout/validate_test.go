package layout

import (
	"testing"

	"github.com/matzehuels/lotplan/pkg/errors"
)

func TestCheck(t *testing.T) {
	canvas := Canvas{Width: 500, Height: 500}
	size := DefaultSpotSize()
	spots := []Spot{
		{ID: 1, Label: "P1", X: 20, Y: 20},
		{ID: 2, Label: "P2", X: 80, Y: 20},
	}

	tests := []struct {
		name      string
		candidate Pose
		exclude   int
		wantCode  errors.Code
	}{
		{"free cell", Pose{X: 200, Y: 200}, NoExclude, ""},
		{"touching neighbour", Pose{X: 130, Y: 20}, NoExclude, ""},
		{"flush with canvas corner", Pose{X: 450, Y: 400}, NoExclude, ""},
		{"on top of spot 1", Pose{X: 20, Y: 20}, NoExclude, errors.ErrCodeOverlap},
		{"straddles the gap", Pose{X: 50, Y: 20}, NoExclude, errors.ErrCodeOverlap},
		{"past right edge", Pose{X: 460, Y: 0}, NoExclude, errors.ErrCodeOutOfBounds},
		{"negative", Pose{X: -1, Y: 0}, NoExclude, errors.ErrCodeOutOfBounds},
		{"rotation escapes canvas", Pose{X: 0, Y: 300, Rotation: 45}, NoExclude, errors.ErrCodeOutOfBounds},
		{"self excluded", Pose{X: 25, Y: 20}, 1, ""},
		{"exclusion only skips one spot", Pose{X: 60, Y: 20}, 1, errors.ErrCodeOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.candidate, spots, canvas, size, tt.exclude)
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("Check() code = %q, want %q (err = %v)", got, tt.wantCode, err)
			}
			if valid := IsValid(tt.candidate, spots, canvas, size, tt.exclude); valid != (tt.wantCode == "") {
				t.Errorf("IsValid() = %v, want %v", valid, tt.wantCode == "")
			}
		})
	}
}

func TestCheckIsPure(t *testing.T) {
	spots := []Spot{{ID: 1, Label: "P1", X: 20, Y: 20}}
	before := spots[0]
	_ = Check(Pose{X: 20, Y: 20}, spots, Canvas{Width: 500, Height: 500}, DefaultSpotSize(), NoExclude)
	if spots[0] != before {
		t.Errorf("Check mutated input: %+v", spots[0])
	}
}
