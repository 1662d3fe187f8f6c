package errors

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinCanvasSize is the smallest accepted canvas width or height.
const MinCanvasSize = 200

// MaxLabelLength is the longest accepted spot label, in runes.
const MaxLabelLength = 64

// ValidateCanvas checks raw width/height input from a resize control.
func ValidateCanvas(width, height float64) error {
	if math.IsNaN(width) || math.IsNaN(height) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return New(ErrCodeInvalidCanvas, "canvas size must be finite")
	}
	if width < MinCanvasSize || height < MinCanvasSize {
		return New(ErrCodeInvalidCanvas, "canvas must be at least %dx%d (got %gx%g)",
			MinCanvasSize, MinCanvasSize, width, height)
	}
	return nil
}

// ValidateLabel checks a spot label. Labels need not be unique, but they are
// shown on the canvas and in published records, so they must be short,
// printable and non-blank.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidLabel, "label cannot be empty")
	}
	if utf8.RuneCountInString(label) > MaxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d characters)", MaxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label contains invalid control characters")
		}
	}
	return nil
}

// ValidateCoordinate checks that a user-supplied coordinate or angle is a
// finite number.
func ValidateCoordinate(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", name)
	}
	return nil
}

// ValidateGeoCoordinate checks a latitude/longitude pair.
func ValidateGeoCoordinate(lat, lng float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return New(ErrCodeInvalidLot, "latitude must be within [-90, 90] (got %g)", lat)
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return New(ErrCodeInvalidLot, "longitude must be within [-180, 180] (got %g)", lng)
	}
	return nil
}
