// Package grid computes the timetable layout of a single day of an event
// schedule.
//
// The grid has one column per venue room (or per room-less venue, plus a
// trailing "General" column for sessions without a venue) and one row per
// quantum of time. Computing it is a pure, deterministic pipeline:
//
//  1. [NormalizeDomain] finds the time range to display, widened to the
//     business window and aligned to the quantum.
//  2. [Slots] enumerates the quantum-aligned rows of that range.
//  3. [ResolveColumns] flattens the venue/room hierarchy into columns and
//     header spans.
//  4. [Place] maps each session onto a row span and a column.
//
// [Compute] runs all four steps and is what most callers want:
//
//	g := grid.Compute(sessions, venues, grid.Options{Location: loc})
//	if g.Empty {
//	    // nothing to display
//	}
//	for _, p := range g.Placements {
//	    fmt.Println(p.Session.Title, p.StartRow, p.EndRow, p.Column)
//	}
//
// Input is expected to hold one day's sessions; partition by day with
// schedule.Filter before calling. No function in this package performs I/O,
// keeps state between calls or mutates its input, so concurrent use is safe.
package grid
