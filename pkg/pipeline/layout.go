package pipeline

import (
	"time"

	"github.com/matzehuels/schedgrid/pkg/errors"
	"github.com/matzehuels/schedgrid/pkg/grid"
	"github.com/matzehuels/schedgrid/pkg/schedule"
	"github.com/matzehuels/schedgrid/pkg/timetable"
)

// =============================================================================
// Layout Generation
// =============================================================================

// Selection is the outcome of filtering an event down to one day.
type Selection struct {
	Location *time.Location
	Days     []string // days with sessions after filtering, ascending
	Day      string   // the selected day, empty when nothing matched
	Sessions []schedule.Session
}

// Select applies the filters in opts to ev and picks the day to lay out.
//
// When opts.Day is empty the first day with sessions is used. The day is
// resolved in opts.Timezone, or the event's own timezone when unset.
func Select(ev *schedule.Event, opts Options) Selection {
	loc := ev.Location()
	if opts.Timezone != "" {
		if l, err := time.LoadLocation(opts.Timezone); err == nil {
			loc = l
		}
	}

	filtered := opts.Filter().Apply(ev.Sessions, loc)
	sel := Selection{Location: loc, Days: schedule.Days(filtered, loc), Day: opts.Day}
	if sel.Day == "" && len(sel.Days) > 0 {
		sel.Day = sel.Days[0]
	}
	if sel.Day != "" {
		sel.Sessions = schedule.Filter{Day: sel.Day}.Apply(filtered, loc)
	}
	return sel
}

// GenerateLayout computes the grid for one day of ev. It performs no I/O and
// does not log; [Runner.Layout] wraps it with logging and hooks.
func GenerateLayout(ev *schedule.Event, opts Options) (timetable.Layout, Stats, error) {
	if ev == nil {
		return timetable.Layout{}, Stats{}, errors.New(errors.ErrCodeInvalidInput, "event is nil")
	}
	if err := opts.ValidateForLayout(); err != nil {
		return timetable.Layout{}, Stats{}, err
	}

	sel := Select(ev, opts)
	g := grid.Compute(sel.Sessions, ev.Venues, opts.GridOptions(sel.Location))

	l := timetable.FromGrid(g)
	l.EventID = ev.ID
	l.Day = sel.Day
	l.Timezone = sel.Location.String()

	stats := Stats{
		Sessions: len(ev.Sessions),
		Selected: len(sel.Sessions),
		Placed:   len(g.Placements),
		Dropped:  len(g.Dropped),
	}
	for _, s := range sel.Sessions {
		if s.Inverted() {
			stats.Inverted++
		}
	}
	return l, stats, nil
}

// Days returns the days of ev that have sessions matching the filters in opts.
func Days(ev *schedule.Event, opts Options) []string {
	opts.Day = ""
	return Select(ev, opts).Days
}
