package timetable

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/schedgrid/pkg/grid"
	"github.com/matzehuels/schedgrid/pkg/schedule"
)

func sampleGrid() grid.Grid {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	venues := []schedule.Venue{
		{ID: "hall", Name: "Hall", Rooms: []schedule.Room{{ID: "r1", Name: "Room 1"}}},
	}
	sessions := []schedule.Session{
		{
			ID: "s1", Title: "Opening", Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour),
			VenueID: "hall", RoomID: "r1",
			Type:         &schedule.SessionType{ID: "kn", Name: "Keynote", Color: "#ff8800"},
			Track:        &schedule.Track{ID: "main", Name: "Main"},
			SpeakerNames: []string{"Rob"},
		},
		{ID: "s2", Title: "Hallway", Start: day.Add(12 * time.Hour), End: day.Add(13 * time.Hour)},
	}
	return grid.Compute(sessions, venues, grid.Options{})
}

func TestFromGrid(t *testing.T) {
	l := FromGrid(sampleGrid())

	if l.Empty {
		t.Fatal("layout should not be empty")
	}
	if l.QuantumMinutes != 15 {
		t.Errorf("QuantumMinutes = %d, want 15", l.QuantumMinutes)
	}
	if l.HeaderRows != 2 || !l.HasAnyRooms {
		t.Errorf("HeaderRows = %d, HasAnyRooms = %v", l.HeaderRows, l.HasAnyRooms)
	}
	if len(l.Columns) != 2 || !l.Columns[1].General {
		t.Errorf("columns = %+v, want room + General", l.Columns)
	}
	if len(l.Spans) != 1 || l.Spans[0].Span != 1 {
		t.Errorf("spans = %+v", l.Spans)
	}

	p := l.Placements[0]
	if p.Type != "Keynote" || p.Track != "Main" || p.Color != "#ff8800" {
		t.Errorf("placement metadata = %+v", p)
	}
	if len(p.Speakers) != 1 || p.Speakers[0] != "Rob" {
		t.Errorf("speakers = %v", p.Speakers)
	}
	if l.Placements[1].Speakers != nil {
		t.Errorf("speakers should be omitted when empty, got %v", l.Placements[1].Speakers)
	}
	if err := l.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestFromGridEmpty(t *testing.T) {
	l := FromGrid(grid.Compute(nil, nil, grid.Options{}))
	if !l.Empty {
		t.Error("layout should be empty")
	}
	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout() error: %v", err)
	}
	if strings.Contains(string(data), "domain_start") {
		t.Errorf("empty layout should omit the domain: %s", data)
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	l := FromGrid(sampleGrid())
	l.EventID, l.Day, l.Timezone = "conf", "2025-06-10", "UTC"

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile() error: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if got.EventID != "conf" || got.Day != "2025-06-10" {
		t.Errorf("metadata lost: %+v", got)
	}
	if len(got.Placements) != len(l.Placements) || !got.DomainStart.Equal(l.DomainStart) {
		t.Errorf("layout changed on round trip")
	}
}

func TestUnmarshalLayoutRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{`},
		{"no columns", `{"header_rows": 1}`},
		{"column out of range", `{"header_rows": 1, "columns": [{"venue_id": "v", "label": "V"}], "placements": [{"session_id": "s", "column": 3, "start_row": 2, "end_row": 3}]}`},
		{"row inside header", `{"header_rows": 2, "columns": [{"venue_id": "v", "label": "V"}], "placements": [{"session_id": "s", "column": 0, "start_row": 2, "end_row": 3}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalLayout([]byte(tt.data)); err == nil {
				t.Error("UnmarshalLayout() should fail")
			}
		})
	}

	if _, err := ReadLayoutFile(filepath.Join(os.TempDir(), "does-not-exist.json")); err == nil {
		t.Error("ReadLayoutFile() should fail for missing file")
	}
}
