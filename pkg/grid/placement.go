package grid

import (
	"time"

	"github.com/matzehuels/schedgrid/pkg/schedule"
)

// Placement is the grid position of one session. Rows are absolute grid rows
// including the header rows; EndRow is exclusive, so the session covers rows
// StartRow..EndRow-1. Column indexes [Columns.List].
type Placement struct {
	Session  schedule.Session
	StartRow int
	EndRow   int
	Column   int
	Color    string
}

// RowSpan returns the number of rows the placement covers (always >= 1).
func (p Placement) RowSpan() int { return p.EndRow - p.StartRow }

// Place computes the placement of every session that resolves to a column.
// Sessions whose column cannot be found are skipped and their ids returned in
// dropped, in input order.
func Place(sessions []schedule.Session, d Domain, cols Columns, opts Options) (placements []Placement, dropped []string) {
	opts = opts.withDefaults()
	offset := HeaderRows(cols.HasAnyRooms)

	placements = make([]Placement, 0, len(sessions))
	for _, s := range sessions {
		col := cols.Resolve(s)
		if col < 0 {
			dropped = append(dropped, s.ID)
			continue
		}
		start, end := Rows(s, d.Start, opts.Quantum, offset)
		placements = append(placements, Placement{
			Session:  s,
			StartRow: start,
			EndRow:   end,
			Column:   col,
			Color:    Color(s, opts.FallbackColor),
		})
	}
	return placements, dropped
}

// Rows returns the start and end grid rows of s for a domain starting at
// origin. Sessions shorter than one quantum still occupy one full row.
func Rows(s schedule.Session, origin time.Time, quantum time.Duration, headerRows int) (startRow, endRow int) {
	startRow = floorDiv(s.Start.Sub(origin), quantum) + headerRows + 1
	endRow = ceilDiv(s.End.Sub(origin), quantum) + headerRows + 1
	if endRow < startRow+1 {
		endRow = startRow + 1
	}
	return startRow, endRow
}

// Color returns the session type color, else the track color, else fallback.
func Color(s schedule.Session, fallback string) string {
	if s.Type != nil && s.Type.Color != "" {
		return s.Type.Color
	}
	if s.Track != nil && s.Track.Color != "" {
		return s.Track.Color
	}
	if fallback == "" {
		return DefaultFallbackColor
	}
	return fallback
}

func floorDiv(d, q time.Duration) int {
	n := d / q
	if d%q < 0 {
		n--
	}
	return int(n)
}

func ceilDiv(d, q time.Duration) int {
	n := d / q
	if d%q > 0 {
		n++
	}
	return int(n)
}
