package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/schedgrid/pkg/errors"
	"github.com/matzehuels/schedgrid/pkg/schedule"
)

// WriteSchedule encodes ev as a schedule document. The output can be read
// back with [ReadSchedule].
func WriteSchedule(ev *schedule.Event, w io.Writer, format string) error {
	d := fromEvent(ev)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported schedule format %q", format)
	}
}

// WriteJSON encodes ev as a JSON schedule document.
func WriteJSON(ev *schedule.Event, w io.Writer) error {
	return WriteSchedule(ev, w, FormatJSON)
}

// ExportFile writes ev to path, choosing the format from the file extension.
func ExportFile(ev *schedule.Event, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSchedule(ev, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
