package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/schedgrid/pkg/errors"
	"github.com/matzehuels/schedgrid/pkg/schedule"
)

// Supported document formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// FormatFromPath returns the document format implied by the file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported schedule file %q (expected .json or .toml)", filepath.Base(path))
	}
}

// ReadSchedule decodes a schedule document from r.
//
// References between sessions and types, tracks and speakers are resolved
// and missing ids are assigned. ReadSchedule does not close r.
func ReadSchedule(r io.Reader, format string) (*schedule.Event, error) {
	d, err := decode(r, format)
	if err != nil {
		return nil, err
	}
	return d.toEvent()
}

// ReadScheduleFor is ReadSchedule for a document that must be stored under
// id. A document without an id takes id; one with a different id is
// rejected.
func ReadScheduleFor(r io.Reader, format, id string) (*schedule.Event, error) {
	if err := errors.ValidateEventID(id); err != nil {
		return nil, err
	}
	d, err := decode(r, format)
	if err != nil {
		return nil, err
	}
	switch d.ID {
	case "":
		d.ID = id
	case id:
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "document id %q does not match %q", d.ID, id)
	}
	return d.toEvent()
}

func decode(r io.Reader, format string) (*document, error) {
	var d document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSchedule, err, "decode json")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&d)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSchedule, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidSchedule, "unknown toml key %q", undecoded[0].String())
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported schedule format %q", format)
	}
	return &d, nil
}

// ImportFile reads a schedule document from path, choosing the format from
// the file extension.
func ImportFile(path string) (*schedule.Event, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "schedule file %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ev, err := ReadSchedule(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ev, nil
}
