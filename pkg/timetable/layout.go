package timetable

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/schedgrid/pkg/grid"
)

// =============================================================================
// Grid → Layout Conversion
// =============================================================================

// FromGrid converts a computed grid into its serialized form. EventID, Day
// and Timezone are left for the caller to fill in.
func FromGrid(g grid.Grid) Layout {
	if g.Empty {
		return Layout{Empty: true}
	}

	l := Layout{
		DomainStart:    g.Domain.Start,
		DomainEnd:      g.Domain.End,
		QuantumMinutes: int(g.Quantum.Minutes()),
		HeaderRows:     g.HeaderRows,
		HasAnyRooms:    g.Columns.HasAnyRooms,
		Slots:          make([]Slot, len(g.Slots)),
		Columns:        make([]Column, len(g.Columns.List)),
		Spans:          make([]Span, len(g.Columns.Spans)),
		Placements:     make([]Placement, len(g.Placements)),
		Dropped:        g.Dropped,
	}
	for i, s := range g.Slots {
		l.Slots[i] = Slot{Time: s.Time, Row: s.Row}
	}
	for i, c := range g.Columns.List {
		l.Columns[i] = Column{VenueID: c.VenueID, RoomID: c.RoomID, Label: c.Label, General: c.IsGeneral()}
	}
	for i, s := range g.Columns.Spans {
		l.Spans[i] = Span{VenueID: s.VenueID, Name: s.Name, StartColumn: s.StartColumn, Span: s.Span}
	}
	for i, p := range g.Placements {
		out := Placement{
			SessionID: p.Session.ID,
			Title:     p.Session.Title,
			Start:     p.Session.Start,
			End:       p.Session.End,
			Speakers:  p.Session.AllSpeakerNames(),
			StartRow:  p.StartRow,
			EndRow:    p.EndRow,
			Column:    p.Column,
			Color:     p.Color,
		}
		if len(out.Speakers) == 0 {
			out.Speakers = nil
		}
		if p.Session.Type != nil {
			out.Type = p.Session.Type.Name
		}
		if p.Session.Track != nil {
			out.Track = p.Session.Track.Name
		}
		l.Placements[i] = out
	}
	return l
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and checks that its
// placements reference existing columns and rows.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, err
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks the internal consistency of the layout.
func (l *Layout) Validate() error {
	if l.Empty {
		return nil
	}
	if len(l.Columns) == 0 {
		return fmt.Errorf("layout must contain columns")
	}
	if l.HeaderRows < 1 {
		return fmt.Errorf("layout must have at least one header row")
	}
	for _, p := range l.Placements {
		if p.Column < 0 || p.Column >= len(l.Columns) {
			return fmt.Errorf("placement %s: column %d out of range", p.SessionID, p.Column)
		}
		if p.StartRow <= l.HeaderRows || p.EndRow <= p.StartRow {
			return fmt.Errorf("placement %s: invalid rows %d-%d", p.SessionID, p.StartRow, p.EndRow)
		}
	}
	return nil
}

// WriteLayout writes a Layout as indented JSON to w.
func WriteLayout(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
