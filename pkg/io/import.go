package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/layout"
)

// ReadJSON decodes a JSON draft from r into a new layout.
//
// A missing version is read as version 1. Newer versions are refused with
// INVALID_FORMAT rather than silently dropping fields. The decoded snapshot
// is validated by [layout.Restore]; its errors are returned unchanged so
// callers can inspect their codes.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*layout.State, error) {
	var d draft
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode draft")
	}
	if d.Version > Version {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"draft version %d is newer than supported version %d", d.Version, Version)
	}
	return layout.Restore(d.Snapshot)
}

// ImportJSON reads the JSON draft at path.
//
// A missing file is reported as NOT_FOUND so callers can distinguish "no
// draft yet" from a corrupt one.
func ImportJSON(path string) (*layout.State, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "draft %s does not exist", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
