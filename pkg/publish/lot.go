package publish

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/lotplan/pkg/errors"
)

// Lot is the descriptive metadata of a parking lot.
type Lot struct {
	Name         string  `json:"name" toml:"name" yaml:"name" bson:"name" msgpack:"name"`
	Address      string  `json:"address" toml:"address" yaml:"address" bson:"address" msgpack:"address"`
	Latitude     float64 `json:"latitude" toml:"latitude" yaml:"latitude" bson:"latitude" msgpack:"latitude"`
	Longitude    float64 `json:"longitude" toml:"longitude" yaml:"longitude" bson:"longitude" msgpack:"longitude"`
	PricePerHour float64 `json:"price_per_hour" toml:"price_per_hour" yaml:"price_per_hour" bson:"price_per_hour" msgpack:"price_per_hour"`
}

// Validate checks that the lot is complete enough to publish.
func (l Lot) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return errors.New(errors.ErrCodeInvalidLot, "lot name is required")
	}
	if strings.TrimSpace(l.Address) == "" {
		return errors.New(errors.ErrCodeInvalidLot, "lot address is required")
	}
	if err := errors.ValidateGeoCoordinate(l.Latitude, l.Longitude); err != nil {
		return err
	}
	if math.IsNaN(l.PricePerHour) || math.IsInf(l.PricePerHour, 0) {
		return errors.New(errors.ErrCodeInvalidLot, "price per hour must be a finite number (got %g)", l.PricePerHour)
	}
	if l.PricePerHour < 0 {
		return errors.New(errors.ErrCodeInvalidLot, "price per hour cannot be negative (got %g)", l.PricePerHour)
	}
	return nil
}

// LoadLot reads lot metadata from path. Files ending in .yaml or .yml are
// parsed as YAML, everything else as TOML.
func LoadLot(path string) (Lot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Lot{}, errors.Wrap(errors.ErrCodeNotFound, err, "lot file %s does not exist", path)
		}
		return Lot{}, fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseTOML(data)
	}
}

// ParseTOML decodes lot metadata from TOML. Unknown keys are refused so
// typos do not silently drop fields.
func ParseTOML(data []byte) (Lot, error) {
	var l Lot
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&l)
	if err != nil {
		return Lot{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse lot TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Lot{}, errors.New(errors.ErrCodeInvalidFormat, "unknown lot field %q", undecoded[0].String())
	}
	return l, nil
}

// ParseYAML decodes lot metadata from YAML.
func ParseYAML(data []byte) (Lot, error) {
	var l Lot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		return Lot{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse lot YAML")
	}
	return l, nil
}
