package grid

import (
	"fmt"
	"time"
)

// Defaults applied by [Options.withDefaults].
const (
	// DefaultQuantum is the height of one grid row.
	DefaultQuantum = 15 * time.Minute

	// DefaultGeneralLabel labels the column holding sessions without a venue.
	DefaultGeneralLabel = "General"

	// DefaultFallbackColor is used when a session has neither a type nor a
	// track color.
	DefaultFallbackColor = "#868E96"

	// GeneralVenueID is the reserved venue id of the General column.
	GeneralVenueID = "__general__"
)

var (
	// DefaultDayStart is the start of the business window every day grid covers.
	DefaultDayStart = Clock(9, 30)

	// DefaultDayEnd is the end of the business window every day grid covers.
	DefaultDayEnd = Clock(19, 0)
)

// ClockTime is a wall-clock time of day. The zero value is unset, so an
// explicit midnight must come from Clock or ParseClock.
type ClockTime struct {
	Hour   int
	Minute int

	set bool
}

// Clock returns the clock time hour:minute.
func Clock(hour, minute int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute, set: true}
}

// ParseClock parses "HH:MM" (24-hour clock).
func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q (want HH:MM)", s)
	}
	return Clock(t.Hour(), t.Minute()), nil
}

// String formats the clock time as "HH:MM".
func (c ClockTime) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// IsZero reports whether c is unset. Options replaces unset clock times with
// the defaults; a parsed "00:00" is set.
func (c ClockTime) IsZero() bool { return !c.set }

// On returns the instant at clock time c on the calendar day of t in loc.
func (c ClockTime) On(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), c.Hour, c.Minute, 0, 0, loc)
}

// Options configures a grid computation. The zero value is usable.
type Options struct {
	Quantum       time.Duration  // row height; default 15m
	DayStart      ClockTime      // business window start; default 09:30
	DayEnd        ClockTime      // business window end; default 19:00
	Location      *time.Location // timezone of the business window; default UTC
	GeneralLabel  string         // label of the General column
	FallbackColor string         // color when neither type nor track has one
}

func (o Options) withDefaults() Options {
	if o.Quantum <= 0 {
		o.Quantum = DefaultQuantum
	}
	if o.DayStart.IsZero() {
		o.DayStart = DefaultDayStart
	}
	if o.DayEnd.IsZero() {
		o.DayEnd = DefaultDayEnd
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.GeneralLabel == "" {
		o.GeneralLabel = DefaultGeneralLabel
	}
	if o.FallbackColor == "" {
		o.FallbackColor = DefaultFallbackColor
	}
	return o
}
