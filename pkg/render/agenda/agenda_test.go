package agenda

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/schedgrid/pkg/grid"
	"github.com/matzehuels/schedgrid/pkg/schedule"
	"github.com/matzehuels/schedgrid/pkg/timetable"
)

func TestRender(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	venues := []schedule.Venue{
		{ID: "hall", Name: "Hall", Rooms: []schedule.Room{{ID: "r1", Name: "Room 1"}}},
		{ID: "garden", Name: "Garden"},
	}
	sessions := []schedule.Session{
		{ID: "late", Title: "Closing", Start: day.Add(17 * time.Hour), End: day.Add(18 * time.Hour), VenueID: "garden"},
		{ID: "early", Title: "Opening", Start: day.Add(10 * time.Hour), End: day.Add(10*time.Hour + 30*time.Minute),
			VenueID: "hall", RoomID: "r1", Type: &schedule.SessionType{ID: "kn", Name: "Keynote"},
			Speakers: []schedule.Speaker{{ID: "ada", Name: "Ada Lovelace"}}},
	}
	l := timetable.FromGrid(grid.Compute(sessions, venues, grid.Options{}))
	l.Day, l.Timezone = "2025-06-10", "Europe/Berlin"

	out := Render(l)
	open, closing := strings.Index(out, "Opening"), strings.Index(out, "Closing")
	if open < 0 || closing < 0 || open > closing {
		t.Fatalf("sessions should be listed chronologically:\n%s", out)
	}
	for _, want := range []string{"2025-06-10", "12:00–12:30", "Hall · Room 1", "Keynote · Ada Lovelace", "(Garden)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(timetable.Layout{Empty: true}); !strings.Contains(got, timetable.EmptyMessage) {
		t.Errorf("Render(empty) = %q", got)
	}
}
