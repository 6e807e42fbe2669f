// Package pipeline provides the schedule → grid → artifact pipeline shared by
// the CLI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: fetch the event document from a [storage.Store]
//  2. Layout: filter sessions, pick a day and compute the grid
//  3. Render: produce artifacts (json, text, agenda, dot, svg)
//
// Layouts are never cached: computing a day grid is cheaper than a cache
// round trip. Rendered artifacts are cached by the hash of the layout they
// were drawn from, which is safe because the grid is deterministic.
//
// # Usage
//
//	runner := pipeline.NewRunner(store, cache, nil, logger)
//	result, err := runner.ExecuteEvent(ctx, pipeline.Options{
//	    EventID: "gophercon-eu",
//	    Day:     "2025-06-10",
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// [storage.Store]: github.com/matzehuels/schedgrid/pkg/storage.Store
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/schedgrid/pkg/cache"
	"github.com/matzehuels/schedgrid/pkg/errors"
	"github.com/matzehuels/schedgrid/pkg/grid"
	"github.com/matzehuels/schedgrid/pkg/render"
	"github.com/matzehuels/schedgrid/pkg/schedule"
	"github.com/matzehuels/schedgrid/pkg/timetable"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultQuantumMinutes is the default grid row height.
	DefaultQuantumMinutes = 15

	// DefaultDayStart is the default start of the business window.
	DefaultDayStart = "09:30"

	// DefaultDayEnd is the default end of the business window.
	DefaultDayEnd = "19:00"

	// DefaultGeneralLabel labels the column for sessions without a venue.
	DefaultGeneralLabel = grid.DefaultGeneralLabel

	// DefaultFallbackColor is used for sessions with neither type nor track color.
	DefaultFallbackColor = grid.DefaultFallbackColor

	// MaxQuantumMinutes bounds the row height; larger rows make no useful grid.
	MaxQuantumMinutes = 240
)

// DefaultFormats is used when no format is requested.
var DefaultFormats = []string{render.FormatJSON}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Selection
	EventID string   `json:"event_id,omitempty"`
	Day     string   `json:"day,omitempty"` // YYYY-MM-DD; empty picks the first day
	Tracks  []string `json:"tracks,omitempty"`
	Types   []string `json:"types,omitempty"`
	Search  string   `json:"search,omitempty"`

	// Grid
	QuantumMinutes int    `json:"quantum_minutes,omitempty"`
	DayStart       string `json:"day_start,omitempty"`
	DayEnd         string `json:"day_end,omitempty"`
	Timezone       string `json:"timezone,omitempty"` // overrides the event timezone
	GeneralLabel   string `json:"general_label,omitempty"`
	FallbackColor  string `json:"fallback_color,omitempty"`

	// Render
	Formats []string `json:"formats,omitempty"`
	Color   bool     `json:"color,omitempty"`
	Details bool     `json:"details,omitempty"`
	Refresh bool     `json:"refresh,omitempty"` // bypass the artifact cache

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Days lists every day that has sessions after filtering.
	Days []string

	// Layout is the computed grid for the selected day.
	Layout timetable.Layout

	// LayoutHash is the content hash of Layout, used for artifact keys and ETags.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Sessions   int // sessions in the event
	Selected   int // sessions left after filtering and day selection
	Placed     int
	Dropped    int // sessions that matched no column
	Inverted   int // sessions ending before they start
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the full
// pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for grid computation.
func (o *Options) SetLayoutDefaults() {
	if o.QuantumMinutes == 0 {
		o.QuantumMinutes = DefaultQuantumMinutes
	}
	if o.DayStart == "" {
		o.DayStart = DefaultDayStart
	}
	if o.DayEnd == "" {
		o.DayEnd = DefaultDayEnd
	}
	if o.GeneralLabel == "" {
		o.GeneralLabel = DefaultGeneralLabel
	}
	if o.FallbackColor == "" {
		o.FallbackColor = DefaultFallbackColor
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for grid computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.EventID != "" {
		if err := errors.ValidateEventID(o.EventID); err != nil {
			return err
		}
	}
	if err := errors.ValidateDay(o.Day); err != nil {
		return err
	}
	if err := errors.ValidateTimezone(o.Timezone); err != nil {
		return err
	}
	if o.QuantumMinutes < 1 || o.QuantumMinutes > MaxQuantumMinutes || 60%o.QuantumMinutes != 0 && o.QuantumMinutes%60 != 0 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid quantum %d minutes (must divide or be a multiple of an hour, max %d)", o.QuantumMinutes, MaxQuantumMinutes)
	}
	if err := errors.ValidateClock(o.DayStart); err != nil {
		return err
	}
	if err := errors.ValidateClock(o.DayEnd); err != nil {
		return err
	}
	start, _ := grid.ParseClock(o.DayStart)
	end, _ := grid.ParseClock(o.DayEnd)
	if start.Hour*60+start.Minute >= end.Hour*60+end.Minute {
		return errors.New(errors.ErrCodeInvalidClock, "day start %s must be before day end %s", o.DayStart, o.DayEnd)
	}
	return errors.ValidateColor(o.FallbackColor)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	for _, f := range o.Formats {
		if err := render.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Filter returns the session filter without the day, which is resolved
// separately so the first day can be picked when none is given.
func (o *Options) Filter() schedule.Filter {
	return schedule.Filter{TrackIDs: o.Tracks, TypeIDs: o.Types, Search: o.Search}
}

// GridOptions converts the validated options into grid options for loc.
func (o *Options) GridOptions(loc *time.Location) grid.Options {
	start, _ := grid.ParseClock(o.DayStart)
	end, _ := grid.ParseClock(o.DayEnd)
	return grid.Options{
		Quantum:       time.Duration(o.QuantumMinutes) * time.Minute,
		DayStart:      start,
		DayEnd:        end,
		Location:      loc,
		GeneralLabel:  o.GeneralLabel,
		FallbackColor: o.FallbackColor,
	}
}

// RenderOptions returns renderer options.
func (o *Options) RenderOptions() render.Options {
	return render.Options{Color: o.Color, Details: o.Details}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Color: o.Color, Details: o.Details}
}
