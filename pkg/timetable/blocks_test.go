package timetable

import "testing"

func TestBlocks(t *testing.T) {
	l := Layout{
		HeaderRows: 1,
		Columns:    []Column{{Label: "A"}, {Label: "B"}},
		Placements: []Placement{
			{SessionID: "b1", Column: 1, StartRow: 2, EndRow: 4, Color: "#111111"},
			{SessionID: "a2", Column: 0, StartRow: 5, EndRow: 6},
			{SessionID: "a1", Column: 0, StartRow: 2, EndRow: 4, Color: "#222222"},
			{SessionID: "a3", Column: 0, StartRow: 3, EndRow: 5},
			{SessionID: "b2", Column: 1, StartRow: 4, EndRow: 5},
		},
	}

	got := l.Blocks()
	want := []struct {
		col, start, end int
		ids             []string
	}{
		{0, 2, 5, []string{"a1", "a3"}},
		{0, 5, 6, []string{"a2"}},
		{1, 2, 4, []string{"b1"}},
		{1, 4, 5, []string{"b2"}},
	}
	if len(got) != len(want) {
		t.Fatalf("Blocks() = %d blocks, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		b := got[i]
		if b.Column != w.col || b.StartRow != w.start || b.EndRow != w.end || len(b.Placements) != len(w.ids) {
			t.Errorf("block %d = %+v, want %+v", i, b, w)
			continue
		}
		for j, id := range w.ids {
			if b.Placements[j].SessionID != id {
				t.Errorf("block %d placement %d = %s, want %s", i, j, b.Placements[j].SessionID, id)
			}
		}
	}
	if got[0].Color() != "#222222" || got[0].RowSpan() != 3 {
		t.Errorf("block 0 color/span = %s/%d", got[0].Color(), got[0].RowSpan())
	}
}

func TestBlocksClampToLastSlot(t *testing.T) {
	l := Layout{
		HeaderRows: 1,
		Slots:      make([]Slot, 4),
		Columns:    []Column{{Label: "A"}},
		Placements: []Placement{
			{SessionID: "late", Column: 0, StartRow: 4, EndRow: 7},
			{SessionID: "closing", Column: 0, StartRow: 6, EndRow: 7},
		},
	}
	got := l.Blocks()
	if len(got) != 1 || got[0].StartRow != 4 || got[0].EndRow != 6 || len(got[0].Placements) != 2 {
		t.Fatalf("Blocks() = %+v, want one block over rows 4-6", got)
	}
	if p := got[0].Placements[1]; p.StartRow != 5 || p.EndRow != 6 {
		t.Errorf("closing rows = %d-%d, want 5-6", p.StartRow, p.EndRow)
	}
	if l.Placements[1].StartRow != 6 {
		t.Error("Blocks should not modify the layout")
	}
}

func TestLayoutHelpers(t *testing.T) {
	l := Layout{
		Timezone:   "Not/AZone",
		HeaderRows: 2,
		Spans:      []Span{{VenueID: "v", StartColumn: 1, Span: 2}},
	}
	if l.Location().String() != "UTC" {
		t.Errorf("Location() = %v, want UTC", l.Location())
	}
	if l.SlotIndex(2) != -1 || l.SlotIndex(3) != 0 {
		t.Errorf("SlotIndex mapping wrong: %d %d", l.SlotIndex(2), l.SlotIndex(3))
	}
	if _, ok := l.SpanOf(0); ok {
		t.Error("column 0 is not covered by a span")
	}
	if s, ok := l.SpanOf(2); !ok || s.VenueID != "v" {
		t.Errorf("SpanOf(2) = %+v, %v", s, ok)
	}
}
