// Package agenda renders a timetable layout as a chronological list, the
// compact alternative to the grid for narrow terminals and plain-text mail.
package agenda

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/schedgrid/pkg/timetable"
)

var (
	timeStyle  = lipgloss.NewStyle().Width(14)
	placeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Render lists every placement ordered by start time, then column.
//
//	10:00–10:30   Opening  (Main Hall · Room 1)
//	              Talk · Go · Ada Lovelace
func Render(l timetable.Layout) string {
	if l.Empty || len(l.Placements) == 0 {
		return timetable.EmptyMessage + "\n"
	}

	loc := l.Location()
	items := slices.Clone(l.Placements)
	slices.SortStableFunc(items, func(a, b timetable.Placement) int {
		return cmp.Or(a.Start.Compare(b.Start), cmp.Compare(a.Column, b.Column))
	})

	var b strings.Builder
	if l.Day != "" {
		fmt.Fprintf(&b, "%s\n\n", l.Day)
	}
	indent := strings.Repeat(" ", 14)
	for _, p := range items {
		when := p.Start.In(loc).Format("15:04") + "–" + p.End.In(loc).Format("15:04")
		b.WriteString(timeStyle.Render(when))
		b.WriteString(p.Title)
		if place := placeLabel(l, p.Column); place != "" {
			b.WriteString("  " + placeStyle.Render("("+place+")"))
		}
		b.WriteString("\n")

		if meta := details(p); meta != "" {
			b.WriteString(indent + placeStyle.Render(meta) + "\n")
		}
	}
	return b.String()
}

func placeLabel(l timetable.Layout, col int) string {
	if col < 0 || col >= len(l.Columns) {
		return ""
	}
	c := l.Columns[col]
	if c.RoomID != "" {
		if s, ok := l.SpanOf(col); ok {
			return s.Name + " · " + c.Label
		}
	}
	return c.Label
}

func details(p timetable.Placement) string {
	var parts []string
	for _, s := range []string{p.Type, p.Track} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(p.Speakers) > 0 {
		parts = append(parts, strings.Join(p.Speakers, ", "))
	}
	return strings.Join(parts, " · ")
}
