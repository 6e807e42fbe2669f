package grid

import (
	"github.com/matzehuels/schedgrid/pkg/schedule"
)

// Column is one grid column: a room of a venue, a room-less venue, or the
// General column. RoomID is empty unless the column is a room.
type Column struct {
	VenueID string
	RoomID  string
	Label   string
}

// IsGeneral reports whether c is the General column.
func (c Column) IsGeneral() bool { return c.VenueID == GeneralVenueID }

// Span is a header hint: the venue Name spans Span columns starting at the
// 0-based StartColumn.
type Span struct {
	VenueID     string
	Name        string
	StartColumn int
	Span        int
}

// Columns is the resolved column layout.
type Columns struct {
	List        []Column
	Spans       []Span
	HasAnyRooms bool // at least one venue contributed room columns
	HasGeneral  bool // the General column was appended
}

// Len returns the number of columns.
func (c Columns) Len() int { return len(c.List) }

// ResolveColumns flattens venues into grid columns.
//
// Venues keep their input order and rooms keep their order within a venue. A
// venue with rooms yields one column per room, a venue without rooms yields a
// single column labeled with the venue name. When at least one session has no
// venue, a General column labeled generalLabel is appended last.
func ResolveColumns(venues []schedule.Venue, sessions []schedule.Session, generalLabel string) Columns {
	if generalLabel == "" {
		generalLabel = DefaultGeneralLabel
	}

	var cols Columns
	for _, v := range venues {
		start := len(cols.List)
		if v.HasRooms() {
			cols.HasAnyRooms = true
			for _, r := range v.Rooms {
				cols.List = append(cols.List, Column{VenueID: v.ID, RoomID: r.ID, Label: r.Name})
			}
		} else {
			cols.List = append(cols.List, Column{VenueID: v.ID, Label: v.Name})
		}
		cols.Spans = append(cols.Spans, Span{
			VenueID:     v.ID,
			Name:        v.Name,
			StartColumn: start,
			Span:        len(cols.List) - start,
		})
	}

	for _, s := range sessions {
		if !s.HasVenue() {
			cols.List = append(cols.List, Column{VenueID: GeneralVenueID, Label: generalLabel})
			cols.HasGeneral = true
			break
		}
	}
	return cols
}

// Resolve returns the column index for s, or -1 when none matches.
//
// A session with a room goes to that room's column. Otherwise a session with a
// venue goes to the first column of that venue. A session with neither goes to
// the General column.
func (c Columns) Resolve(s schedule.Session) int {
	for i, col := range c.List {
		switch {
		case s.HasRoom():
			if col.RoomID == s.RoomID {
				return i
			}
		case s.HasVenue():
			if col.VenueID == s.VenueID {
				return i
			}
		default:
			if col.IsGeneral() {
				return i
			}
		}
	}
	return -1
}
