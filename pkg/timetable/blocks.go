package timetable

import (
	"cmp"
	"slices"
)

// Block is a run of rows in one column covered by one or more overlapping
// placements. Renderers that cannot stack cells draw blocks instead of
// placements.
type Block struct {
	Column     int
	StartRow   int
	EndRow     int
	Placements []Placement
}

// RowSpan returns the number of rows the block covers.
func (b Block) RowSpan() int { return b.EndRow - b.StartRow }

// Color returns the color of the earliest placement in the block.
func (b Block) Color() string { return b.Placements[0].Color }

// Blocks merges overlapping placements per column. The result is ordered by
// column, then start row; placements inside a block keep layout order.
//
// Rows past the last slot are pulled back onto it. A zero-length session at
// the very end of the domain is placed one row below the grid and would
// otherwise not be drawn.
func (l *Layout) Blocks() []Block {
	sorted := slices.Clone(l.Placements)
	if len(l.Slots) > 0 {
		last := l.Rows()
		for i := range sorted {
			p := &sorted[i]
			p.StartRow = min(p.StartRow, last)
			p.EndRow = max(min(p.EndRow, last+1), p.StartRow+1)
		}
	}
	slices.SortStableFunc(sorted, func(a, b Placement) int {
		return cmp.Or(cmp.Compare(a.Column, b.Column), cmp.Compare(a.StartRow, b.StartRow))
	})

	var out []Block
	for _, p := range sorted {
		if n := len(out); n > 0 && out[n-1].Column == p.Column && p.StartRow < out[n-1].EndRow {
			last := &out[n-1]
			last.EndRow = max(last.EndRow, p.EndRow)
			last.Placements = append(last.Placements, p)
			continue
		}
		out = append(out, Block{Column: p.Column, StartRow: p.StartRow, EndRow: p.EndRow, Placements: []Placement{p}})
	}
	return out
}
