package grid

import (
	"time"

	"github.com/matzehuels/schedgrid/pkg/schedule"
)

// Domain is the padded, quantum-aligned time range [Start, End] covered by a grid.
type Domain struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start.
func (d Domain) Duration() time.Duration { return d.End.Sub(d.Start) }

// Contains reports whether the interval [start, end] lies within the domain.
func (d Domain) Contains(start, end time.Time) bool {
	return !start.Before(d.Start) && !end.After(d.End)
}

// NormalizeDomain computes the display range for a day of sessions.
//
// The range spans the earliest start and the latest end, is widened to cover
// the business window (opts.DayStart to opts.DayEnd on the calendar day of the
// earliest start, in opts.Location), and then has its start floored and its
// end ceiled to a multiple of the quantum since the Unix epoch.
//
// ok is false when sessions is empty.
func NormalizeDomain(sessions []schedule.Session, opts Options) (d Domain, ok bool) {
	if len(sessions) == 0 {
		return Domain{}, false
	}
	opts = opts.withDefaults()

	earliest, latest := sessions[0].Start, sessions[0].End
	for _, s := range sessions[1:] {
		if s.Start.Before(earliest) {
			earliest = s.Start
		}
		if s.End.After(latest) {
			latest = s.End
		}
	}

	dayStart := opts.DayStart.On(earliest, opts.Location)
	dayEnd := opts.DayEnd.On(earliest, opts.Location)
	if dayStart.Before(earliest) {
		earliest = dayStart
	}
	if dayEnd.After(latest) {
		latest = dayEnd
	}

	return Domain{
		Start: floorTo(earliest, opts.Quantum).In(opts.Location),
		End:   ceilTo(latest, opts.Quantum).In(opts.Location),
	}, true
}

// floorTo rounds t down to a multiple of q since the Unix epoch.
func floorTo(t time.Time, q time.Duration) time.Time {
	ns := t.UnixNano()
	r := ns % int64(q)
	if r < 0 {
		r += int64(q)
	}
	return time.Unix(0, ns-r)
}

// ceilTo rounds t up to a multiple of q since the Unix epoch.
func ceilTo(t time.Time, q time.Duration) time.Time {
	f := floorTo(t, q)
	if f.Equal(t) {
		return f
	}
	return f.Add(q)
}
