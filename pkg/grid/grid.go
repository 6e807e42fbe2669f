package grid

import (
	"slices"
	"time"

	"github.com/matzehuels/schedgrid/pkg/schedule"
)

// Grid is the computed timetable for one day.
type Grid struct {
	// Empty is set when there were no sessions to display. All other fields
	// are zero in that case.
	Empty bool

	Domain     Domain
	Quantum    time.Duration
	HeaderRows int
	Slots      []Slot
	Columns    Columns
	Placements []Placement

	// Dropped holds the ids of sessions that matched no column, e.g. a
	// session referencing a room that is not in the venue list.
	Dropped []string
}

// Rows returns the total number of grid rows, header rows included.
func (g Grid) Rows() int { return g.HeaderRows + len(g.Slots) }

// Compute runs the full layout pipeline over one day of sessions.
//
// An empty session list short-circuits to a Grid with Empty set, before any
// domain computation. The result depends only on the arguments: identical
// input always yields an identical Grid.
func Compute(sessions []schedule.Session, venues []schedule.Venue, opts Options) Grid {
	if len(sessions) == 0 {
		return Grid{Empty: true}
	}
	opts = opts.withDefaults()

	domain, _ := NormalizeDomain(sessions, opts)
	cols := ResolveColumns(venues, sessions, opts.GeneralLabel)
	placements, dropped := Place(sessions, domain, cols, opts)

	return Grid{
		Domain:     domain,
		Quantum:    opts.Quantum,
		HeaderRows: HeaderRows(cols.HasAnyRooms),
		Slots:      slices.Collect(Slots(domain, opts.Quantum)),
		Columns:    cols,
		Placements: placements,
		Dropped:    dropped,
	}
}
