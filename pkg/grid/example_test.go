package grid_test

import (
	"fmt"
	"time"

	"github.com/matzehuels/schedgrid/pkg/grid"
	"github.com/matzehuels/schedgrid/pkg/schedule"
)

func ExampleCompute() {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	venues := []schedule.Venue{
		{ID: "hall", Name: "Hall", Rooms: []schedule.Room{{ID: "r1", Name: "Room 1"}, {ID: "r2", Name: "Room 2"}}},
		{ID: "garden", Name: "Garden"},
	}
	sessions := []schedule.Session{
		{ID: "opening", Title: "Opening", Start: day.Add(10 * time.Hour), End: day.Add(10*time.Hour + 30*time.Minute), VenueID: "hall", RoomID: "r1"},
		{ID: "coffee", Title: "Coffee", Start: day.Add(9 * time.Hour), End: day.Add(9*time.Hour + 15*time.Minute)},
	}

	g := grid.Compute(sessions, venues, grid.Options{})

	fmt.Println("domain:", g.Domain.Start.Format("15:04"), "-", g.Domain.End.Format("15:04"))
	fmt.Println("header rows:", g.HeaderRows)
	for _, c := range g.Columns.List {
		fmt.Println("column:", c.Label)
	}
	for _, p := range g.Placements {
		fmt.Printf("%s: rows %d-%d, column %d\n", p.Session.Title, p.StartRow, p.EndRow, p.Column)
	}
	// Output:
	// domain: 09:00 - 19:00
	// header rows: 2
	// column: Room 1
	// column: Room 2
	// column: Garden
	// column: General
	// Opening: rows 7-9, column 0
	// Coffee: rows 3-4, column 3
}
