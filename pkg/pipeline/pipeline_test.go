package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/schedgrid/pkg/cache"
	"github.com/matzehuels/schedgrid/pkg/errors"
	"github.com/matzehuels/schedgrid/pkg/schedule"
	"github.com/matzehuels/schedgrid/pkg/storage"
	"github.com/matzehuels/schedgrid/pkg/storage/memory"
)

func conference() *schedule.Event {
	d1 := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	goTrack := &schedule.Track{ID: "go", Name: "Go", Color: "#00ADD8"}
	return &schedule.Event{
		ID:       "conf",
		Timezone: "UTC",
		Venues: []schedule.Venue{
			{ID: "hall", Name: "Hall", Rooms: []schedule.Room{{ID: "r1", Name: "Room 1"}}},
		},
		Sessions: []schedule.Session{
			{ID: "a", Title: "Opening", Start: d1.Add(10 * time.Hour), End: d1.Add(11 * time.Hour), VenueID: "hall", RoomID: "r1", Track: goTrack},
			{ID: "b", Title: "Lunch", Start: d1.Add(12 * time.Hour), End: d1.Add(13 * time.Hour)},
			{ID: "ghost", Title: "Lost", Start: d1.Add(14 * time.Hour), End: d1.Add(15 * time.Hour), VenueID: "hall", RoomID: "gone"},
			{ID: "c", Title: "Day two", Start: d2.Add(9 * time.Hour), End: d2.Add(10 * time.Hour), Track: goTrack},
			{ID: "bad", Title: "Backwards", Start: d2.Add(12 * time.Hour), End: d2.Add(11 * time.Hour)},
		},
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"defaults", Options{}, ""},
		{"bad event id", Options{EventID: "a/b"}, errors.ErrCodeInvalidEventID},
		{"bad day", Options{Day: "June 10"}, errors.ErrCodeInvalidDay},
		{"bad timezone", Options{Timezone: "Nowhere/Place"}, errors.ErrCodeInvalidTimezone},
		{"bad quantum", Options{QuantumMinutes: 7}, errors.ErrCodeInvalidInput},
		{"hour quantum", Options{QuantumMinutes: 60}, ""},
		{"bad clock", Options{DayStart: "9.30"}, errors.ErrCodeInvalidClock},
		{"inverted window", Options{DayStart: "19:00", DayEnd: "09:30"}, errors.ErrCodeInvalidClock},
		{"bad color", Options{FallbackColor: "grey"}, errors.ErrCodeInvalidColor},
		{"bad format", Options{Formats: []string{"png"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.code == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	g := o.GridOptions(time.UTC)
	if g.Quantum != 15*time.Minute || g.DayStart.String() != "09:30" || g.DayEnd.String() != "19:00" {
		t.Errorf("grid options = %+v", g)
	}
	if len(o.Formats) != 1 || o.Formats[0] != "json" {
		t.Errorf("Formats = %v", o.Formats)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestGenerateLayout(t *testing.T) {
	ev := conference()

	l, stats, err := GenerateLayout(ev, Options{})
	if err != nil {
		t.Fatalf("GenerateLayout error: %v", err)
	}
	if l.Day != "2025-06-10" || l.EventID != "conf" || l.Timezone != "UTC" {
		t.Errorf("layout metadata = %s/%s/%s", l.EventID, l.Day, l.Timezone)
	}
	if stats.Sessions != 5 || stats.Selected != 3 || stats.Placed != 2 || stats.Dropped != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if len(l.Dropped) != 1 || l.Dropped[0] != "ghost" {
		t.Errorf("Dropped = %v", l.Dropped)
	}

	l, stats, _ = GenerateLayout(ev, Options{Day: "2025-06-11"})
	if stats.Inverted != 1 || l.Day != "2025-06-11" {
		t.Errorf("day two: stats = %+v, day = %s", stats, l.Day)
	}

	l, _, _ = GenerateLayout(ev, Options{Tracks: []string{"go"}, Day: "2025-06-10"})
	if len(l.Placements) != 1 || l.Placements[0].SessionID != "a" {
		t.Errorf("track filter placements = %+v", l.Placements)
	}

	l, _, _ = GenerateLayout(ev, Options{Search: "nothing matches this"})
	if !l.Empty || l.Day != "" {
		t.Errorf("no match should give an empty layout, got %+v", l)
	}

	if _, _, err := GenerateLayout(nil, Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil event error = %v", err)
	}
}

func TestGenerateLayoutMidnightStart(t *testing.T) {
	l, _, err := GenerateLayout(conference(), Options{Day: "2025-06-10", DayStart: "00:00", DayEnd: "19:00"})
	if err != nil {
		t.Fatalf("GenerateLayout error: %v", err)
	}
	if want := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC); !l.DomainStart.Equal(want) {
		t.Errorf("DomainStart = %v, want %v", l.DomainStart, want)
	}
}

func TestSelectTimezone(t *testing.T) {
	ev := conference()
	// 09:00 UTC on day two is 18:00 JST, still the same day.
	if got := Days(ev, Options{Timezone: "Asia/Tokyo"}); len(got) != 2 || got[1] != "2025-06-11" {
		t.Errorf("Days(Tokyo) = %v", got)
	}
	// In Honolulu (UTC-10) day one's 10:00 UTC session falls on June 10 at 00:00.
	sel := Select(ev, Options{Timezone: "Pacific/Honolulu"})
	if sel.Location.String() != "Pacific/Honolulu" || sel.Day != "2025-06-10" {
		t.Errorf("Select(Honolulu) = %s %s", sel.Location, sel.Day)
	}
}

func TestRunnerExecuteEvent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	if err := store.PutEvent(ctx, conference()); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(store, c, nil, log.New(&logs))
	defer r.Close()

	opts := Options{EventID: "conf", Formats: []string{"json", "text"}}
	res, err := r.ExecuteEvent(ctx, opts)
	if err != nil {
		t.Fatalf("ExecuteEvent error: %v", err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}
	if len(res.Artifacts) != 2 || !strings.Contains(string(res.Artifacts["text"]), "Opening") {
		t.Errorf("artifacts = %v", res.Artifacts)
	}
	if len(res.Days) != 2 || res.LayoutHash == "" {
		t.Errorf("Days = %v, hash = %q", res.Days, res.LayoutHash)
	}
	if !strings.Contains(logs.String(), "sessions match no column") {
		t.Errorf("dropped sessions should be logged:\n%s", logs.String())
	}

	res2, err := r.ExecuteEvent(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !res2.CacheInfo.RenderHit || res2.LayoutHash != res.LayoutHash {
		t.Error("second run should be served from cache")
	}

	opts.Refresh = true
	res3, _ := r.ExecuteEvent(ctx, opts)
	if res3.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}

	if _, err := r.ExecuteEvent(ctx, Options{EventID: "missing"}); !storage.IsNotFound(err) {
		t.Errorf("missing event error = %v", err)
	}
	if _, err := r.ExecuteEvent(ctx, Options{}); !errors.Is(err, errors.ErrCodeInvalidEventID) {
		t.Errorf("empty event id error = %v", err)
	}
}

type flakyStore struct {
	*memory.Store
	failures atomic.Int32
}

func (s *flakyStore) GetEvent(ctx context.Context, id string) (*schedule.Event, error) {
	if s.failures.Add(-1) >= 0 {
		return nil, cache.Retryable(cache.ErrUnavailable)
	}
	return s.Store.GetEvent(ctx, id)
}

func TestRunnerLoadRetries(t *testing.T) {
	old := cache.RetryDelay
	cache.RetryDelay = time.Millisecond
	t.Cleanup(func() { cache.RetryDelay = old })

	ctx := context.Background()
	store := &flakyStore{Store: memory.New()}
	_ = store.PutEvent(ctx, conference())
	r := NewRunner(store, nil, nil, log.New(&bytes.Buffer{}))

	store.failures.Store(2)
	if _, err := r.Load(ctx, "conf"); err != nil {
		t.Errorf("Load should recover after two failures: %v", err)
	}

	store.failures.Store(5)
	_, err := r.Load(ctx, "conf")
	if !errors.Is(err, errors.ErrCodeStorage) {
		t.Errorf("Load error = %v, want storage error", err)
	}

	noStore := NewRunner(nil, nil, nil, nil)
	if _, err := noStore.Load(ctx, "conf"); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Load without store error = %v", err)
	}
}

func TestRenderFromLayoutEmpty(t *testing.T) {
	l, _, _ := GenerateLayout(&schedule.Event{ID: "empty"}, Options{})
	out, err := RenderFromLayout(context.Background(), l, Options{Formats: []string{"text", "agenda"}})
	if err != nil {
		t.Fatal(err)
	}
	for f, data := range out {
		if !strings.Contains(string(data), "No sessions to display") {
			t.Errorf("%s output = %q", f, data)
		}
	}
}
