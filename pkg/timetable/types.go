// Package timetable defines the serialized form of a computed schedule grid.
//
// [Layout] is the canonical format exchanged between the pipeline, the cache,
// the HTTP API and the renderers. It is self-contained: a renderer needs
// nothing but the Layout to draw the grid.
//
// # Coordinates
//
// Rows are absolute grid rows: rows 1..HeaderRows hold the venue (and, when
// HasAnyRooms is set, room) headers, and slot rows follow. A placement covers
// rows StartRow up to but excluding EndRow. Columns are 0-based indexes into
// Columns; renderers that draw a time axis add their own offset.
//
// # Usage
//
//	g := grid.Compute(sessions, venues, opts)
//	l := timetable.FromGrid(g)
//	l.EventID, l.Day = "gophercon", "2025-06-10"
//	data, err := timetable.MarshalLayout(l)
package timetable

import "time"

// EmptyMessage is what every renderer shows for an empty layout.
const EmptyMessage = "No sessions to display"

// Layout is the serialized grid for one event day.
type Layout struct {
	EventID  string `json:"event_id,omitempty" bson:"event_id,omitempty"`
	Day      string `json:"day,omitempty" bson:"day,omitempty"`
	Timezone string `json:"timezone,omitempty" bson:"timezone,omitempty"`

	// Empty is set when no session matched; every field below is then zero.
	Empty bool `json:"empty,omitempty" bson:"empty,omitempty"`

	DomainStart    time.Time   `json:"domain_start,omitzero" bson:"domain_start,omitempty"`
	DomainEnd      time.Time   `json:"domain_end,omitzero" bson:"domain_end,omitempty"`
	QuantumMinutes int         `json:"quantum_minutes,omitempty" bson:"quantum_minutes,omitempty"`
	HeaderRows     int         `json:"header_rows,omitempty" bson:"header_rows,omitempty"`
	HasAnyRooms    bool        `json:"has_any_rooms,omitempty" bson:"has_any_rooms,omitempty"`
	Slots          []Slot      `json:"slots,omitempty" bson:"slots,omitempty"`
	Columns        []Column    `json:"columns,omitempty" bson:"columns,omitempty"`
	Spans          []Span      `json:"spans,omitempty" bson:"spans,omitempty"`
	Placements     []Placement `json:"placements,omitempty" bson:"placements,omitempty"`
	Dropped        []string    `json:"dropped,omitempty" bson:"dropped,omitempty"`
}

// Rows returns the total number of grid rows, header rows included.
func (l *Layout) Rows() int { return l.HeaderRows + len(l.Slots) }

// Location resolves Timezone, falling back to UTC.
func (l *Layout) Location() *time.Location {
	if l.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SlotIndex converts an absolute grid row to an index into Slots. Header
// rows return -1.
func (l *Layout) SlotIndex(row int) int {
	if row <= l.HeaderRows {
		return -1
	}
	return row - l.HeaderRows - 1
}

// SpanOf returns the venue span covering column col.
func (l *Layout) SpanOf(col int) (Span, bool) {
	for _, s := range l.Spans {
		if col >= s.StartColumn && col < s.StartColumn+s.Span {
			return s, true
		}
	}
	return Span{}, false
}

// Slot is a time row.
type Slot struct {
	Time time.Time `json:"time" bson:"time"`
	Row  int       `json:"row" bson:"row"`
}

// Column is a venue, room or General column.
type Column struct {
	VenueID string `json:"venue_id" bson:"venue_id"`
	RoomID  string `json:"room_id,omitempty" bson:"room_id,omitempty"`
	Label   string `json:"label" bson:"label"`
	General bool   `json:"general,omitempty" bson:"general,omitempty"`
}

// Span is a venue header spanning one or more room columns.
type Span struct {
	VenueID     string `json:"venue_id" bson:"venue_id"`
	Name        string `json:"name" bson:"name"`
	StartColumn int    `json:"start_column" bson:"start_column"`
	Span        int    `json:"span" bson:"span"`
}

// Placement is one positioned session block.
type Placement struct {
	SessionID string    `json:"session_id" bson:"session_id"`
	Title     string    `json:"title" bson:"title"`
	Start     time.Time `json:"start" bson:"start"`
	End       time.Time `json:"end" bson:"end"`
	Speakers  []string  `json:"speakers,omitempty" bson:"speakers,omitempty"`
	Type      string    `json:"type,omitempty" bson:"type,omitempty"`
	Track     string    `json:"track,omitempty" bson:"track,omitempty"`
	StartRow  int       `json:"start_row" bson:"start_row"`
	EndRow    int       `json:"end_row" bson:"end_row"`
	Column    int       `json:"column" bson:"column"`
	Color     string    `json:"color" bson:"color"`
}

// RowSpan returns the number of rows the block covers.
func (p Placement) RowSpan() int { return p.EndRow - p.StartRow }
