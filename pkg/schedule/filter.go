package schedule

import (
	"slices"
	"strings"
	"time"
)

// DayLayout is the calendar-day format used by [Filter.Day] and [Days].
const DayLayout = "2006-01-02"

// Filter selects the sessions shown in one rendering pass. It is a plain
// value passed explicitly into the pipeline; zero fields match everything.
type Filter struct {
	Day      string   `json:"day,omitempty"`       // calendar day (YYYY-MM-DD) in the event timezone
	TrackIDs []string `json:"track_ids,omitempty"` // keep sessions on any of these tracks
	TypeIDs  []string `json:"type_ids,omitempty"`  // keep sessions of any of these types
	Search   string   `json:"search,omitempty"`    // case-insensitive text match
}

// IsZero reports whether the filter matches every session.
func (f Filter) IsZero() bool {
	return f.Day == "" && len(f.TrackIDs) == 0 && len(f.TypeIDs) == 0 && strings.TrimSpace(f.Search) == ""
}

// Apply returns the sessions matching f, preserving input order.
// Days are compared in loc; a nil loc means UTC.
func (f Filter) Apply(sessions []Session, loc *time.Location) []Session {
	if loc == nil {
		loc = time.UTC
	}
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if f.Day != "" && DayOf(s.Start, loc) != f.Day {
			continue
		}
		if len(f.TrackIDs) > 0 && (s.Track == nil || !slices.Contains(f.TrackIDs, s.Track.ID)) {
			continue
		}
		if len(f.TypeIDs) > 0 && (s.Type == nil || !slices.Contains(f.TypeIDs, s.Type.ID)) {
			continue
		}
		if needle != "" && !matches(s, needle) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matches(s Session, needle string) bool {
	if strings.Contains(strings.ToLower(s.Title), needle) ||
		strings.Contains(strings.ToLower(s.Description), needle) {
		return true
	}
	for _, n := range s.AllSpeakerNames() {
		if strings.Contains(strings.ToLower(n), needle) {
			return true
		}
	}
	return false
}

// DayOf formats the calendar day of t in loc.
func DayOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DayLayout)
}

// Days returns the sorted distinct calendar days on which sessions start.
func Days(sessions []Session, loc *time.Location) []string {
	seen := make(map[string]bool, len(sessions))
	var days []string
	for _, s := range sessions {
		d := DayOf(s.Start, loc)
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	slices.Sort(days)
	return days
}
