// Package text renders a timetable layout as a terminal table.
//
// The table has a time axis on the left and one column per grid column. A
// session's title appears in its first row and the rows it continues over
// are marked with a vertical bar, so the block is readable without color.
// Venue names prefix room headers when the layout has rooms.
package text

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/schedgrid/pkg/timetable"
)

// Options configures the text renderer.
type Options struct {
	// Color paints session cells with their block color.
	Color bool
	// CellWidth truncates cell contents; zero means no limit.
	CellWidth int
}

const continuation = "│"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Render draws l as a table.
func Render(l timetable.Layout, opts Options) string {
	if l.Empty || len(l.Slots) == 0 {
		return timetable.EmptyMessage + "\n"
	}

	loc := l.Location()
	nCols := len(l.Columns) + 1

	rows := make([][]string, len(l.Slots))
	colors := make([][]string, len(l.Slots))
	for i, s := range l.Slots {
		rows[i] = make([]string, nCols)
		colors[i] = make([]string, nCols)
		rows[i][0] = s.Time.In(loc).Format("15:04")
	}

	for _, b := range l.Blocks() {
		c := b.Column + 1
		first := l.SlotIndex(b.StartRow)
		for r := b.StartRow; r < b.EndRow; r++ {
			i := l.SlotIndex(r)
			if i < 0 || i >= len(rows) {
				continue
			}
			colors[i][c] = b.Color()
			if i == first {
				rows[i][c] = truncate(titles(b), opts.CellWidth)
			} else {
				rows[i][c] = continuation
			}
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		BorderRow(false).
		Headers(headers(l)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return timeStyle
			case opts.Color && row >= 0 && row < len(colors) && colors[row][col] != "":
				return cellStyle.Foreground(lipgloss.Color(colors[row][col]))
			default:
				return cellStyle
			}
		})

	return t.Render() + "\n"
}

func headers(l timetable.Layout) []string {
	out := make([]string, 0, len(l.Columns)+1)
	out = append(out, "Time")
	for i, c := range l.Columns {
		label := c.Label
		if c.RoomID != "" {
			if s, ok := l.SpanOf(i); ok && s.Name != "" {
				label = s.Name + " · " + label
			}
		}
		out = append(out, label)
	}
	return out
}

func titles(b timetable.Block) string {
	parts := make([]string, len(b.Placements))
	for i, p := range b.Placements {
		parts[i] = p.Title
	}
	return strings.Join(parts, " / ")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
