package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/schedgrid/pkg/cache"
	"github.com/matzehuels/schedgrid/pkg/errors"
	"github.com/matzehuels/schedgrid/pkg/observability"
	"github.com/matzehuels/schedgrid/pkg/schedule"
	"github.com/matzehuels/schedgrid/pkg/storage"
	"github.com/matzehuels/schedgrid/pkg/timetable"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so loading, caching and logging behave the same.
//
// The Runner is stateless except for its store, cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Store  storage.Store
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner.
// A nil cache disables caching, a nil keyer uses DefaultKeyer. The store may
// be nil when events are passed in directly.
func NewRunner(store storage.Store, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Store: store, Cache: c, Keyer: keyer, Logger: logger}
}

// ExecuteEvent loads opts.EventID from the store and runs the pipeline on it.
func (r *Runner) ExecuteEvent(ctx context.Context, opts Options) (*Result, error) {
	if opts.EventID == "" {
		return nil, errors.New(errors.ErrCodeInvalidEventID, "event id is required")
	}
	start := time.Now()
	ev, err := r.Load(ctx, opts.EventID)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(start)

	res, err := r.Execute(ctx, ev, opts)
	if err != nil {
		return nil, err
	}
	res.Stats.LoadTime = loadTime
	return res, nil
}

// Execute runs the layout → render pipeline on ev.
func (r *Runner) Execute(ctx context.Context, ev *schedule.Event, opts Options) (*Result, error) {
	if ev == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "event is nil")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Days: Days(ev, opts)}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, stats, err := r.Layout(ctx, ev, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats = stats
	result.Stats.LayoutTime = time.Since(layoutStart)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hash, renderHit, err := r.render(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.LayoutHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load fetches an event from the store, retrying transient failures.
func (r *Runner) Load(ctx context.Context, eventID string) (*schedule.Event, error) {
	if r.Store == nil {
		return nil, errors.New(errors.ErrCodeInternal, "no event store configured")
	}
	if err := errors.ValidateEventID(eventID); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, eventID)
	start := time.Now()

	var ev *schedule.Event
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		ev, err = r.Store.GetEvent(ctx, eventID)
		if err != nil && cache.IsRetryable(err) {
			r.Logger.Warn("event store unavailable, retrying", "event", eventID, "err", err)
		}
		return err
	})

	n := 0
	if ev != nil {
		n = len(ev.Sessions)
	}
	hooks.OnLoadComplete(ctx, eventID, n, time.Since(start), err)

	if err != nil {
		if storage.IsNotFound(err) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load event %s", eventID)
	}
	r.Logger.Debug("loaded event", "event", eventID, "sessions", n, "duration", time.Since(start))
	return ev, nil
}

// Layout computes the grid for one day of ev and logs data problems the grid
// tolerates silently: dropped and inverted sessions.
func (r *Runner) Layout(ctx context.Context, ev *schedule.Event, opts Options) (timetable.Layout, Stats, error) {
	if ev == nil {
		return timetable.Layout{}, Stats{}, errors.New(errors.ErrCodeInvalidInput, "event is nil")
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, ev.ID, opts.Day, len(ev.Sessions))
	start := time.Now()

	l, stats, err := GenerateLayout(ev, opts)
	if err != nil {
		return timetable.Layout{}, Stats{}, err
	}
	hooks.OnLayoutComplete(ctx, ev.ID, l.Day, stats.Placed, stats.Dropped, time.Since(start))

	if stats.Inverted > 0 {
		opts.Logger.Warn("sessions end before they start", "event", ev.ID, "day", l.Day, "count", stats.Inverted)
	}
	if len(l.Dropped) > 0 {
		opts.Logger.Warn("sessions match no column", "event", ev.ID, "day", l.Day, "sessions", l.Dropped)
	}
	opts.Logger.Info("computed grid",
		"day", l.Day,
		"sessions", stats.Selected,
		"placements", stats.Placed,
		"columns", len(l.Columns),
		"rows", l.Rows())

	return l, stats, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l timetable.Layout, opts Options) (map[string][]byte, bool, error) {
	artifacts, _, hit, err := r.render(ctx, l, opts)
	return artifacts, hit, err
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l timetable.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, l timetable.Layout, opts Options) (map[string][]byte, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	hash, err := cache.HashJSON(l)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	keyer := cache.EventKeyer(r.Keyer, l.EventID)
	cacheHooks := observability.Cache()

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)))
			if err != nil {
				opts.Logger.Debug("cache read failed", "err", err)
			}
			if err != nil || !hit {
				cacheHooks.OnCacheMiss(ctx, "artifact")
				break
			}
			cacheHooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, hash, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderFromLayout(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	for format, data := range rendered {
		if err := r.Cache.Set(ctx, keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact); err != nil {
			opts.Logger.Debug("cache write failed", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, hash, false, nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	var err error
	if r.Cache != nil {
		err = r.Cache.Close()
	}
	if r.Store != nil {
		if serr := r.Store.Close(); err == nil {
			err = serr
		}
	}
	return err
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
