package publish

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/layout"
)

// SpotRecord is the persisted form of one spot. Coordinates are rounded to
// whole canvas units.
type SpotRecord struct {
	Label    string  `json:"label" bson:"label" msgpack:"label"`
	X        int     `json:"x" bson:"x" msgpack:"x"`
	Y        int     `json:"y" bson:"y" msgpack:"y"`
	Rotation float64 `json:"rotation" bson:"rotation" msgpack:"rotation"`
}

// Publication is a published lot: metadata plus the final spot records.
type Publication struct {
	ID          string       `json:"id" bson:"_id" msgpack:"id"`
	Lot         Lot          `json:"lot" bson:"lot" msgpack:"lot"`
	Spots       []SpotRecord `json:"spots" bson:"spots" msgpack:"spots"`
	TotalSpots  int          `json:"total_spots" bson:"total_spots" msgpack:"total_spots"`
	PublishedAt time.Time    `json:"published_at" bson:"published_at" msgpack:"published_at"`
}

// Build assembles a publication from lot metadata and the current layout.
//
// Publishing is refused while any spot lies outside the canvas, which can
// only happen after a permissive shrink. Spot order follows creation order.
func Build(lot Lot, s *layout.State) (*Publication, error) {
	if err := lot.Validate(); err != nil {
		return nil, err
	}
	if v := s.Violations(); len(v) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"%d spot(s) lie outside the canvas (ids %v); move them or enlarge the canvas before publishing", len(v), v)
	}

	spots := s.Spots()
	records := make([]SpotRecord, len(spots))
	for i, sp := range spots {
		records[i] = SpotRecord{
			Label:    sp.Label,
			X:        int(math.Round(sp.X)),
			Y:        int(math.Round(sp.Y)),
			Rotation: sp.Rotation,
		}
	}

	return &Publication{
		ID:          uuid.NewString(),
		Lot:         lot,
		Spots:       records,
		TotalSpots:  len(records),
		PublishedAt: time.Now().UTC().Truncate(time.Millisecond),
	}, nil
}
