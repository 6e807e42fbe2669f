package dot

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/schedgrid/pkg/timetable"
)

// Options configures DOT generation.
type Options struct {
	// Details adds the time range and speakers under each title.
	Details bool
	// HeaderColor is the background of header cells.
	HeaderColor string
}

const (
	defaultHeaderColor = "#F1F3F5"
	defaultBlockColor  = "#868E96"
)

// ToDOT converts a layout into a Graphviz graph holding a single HTML-like
// table. Venue headers use COLSPAN over their rooms and session blocks use
// ROWSPAN over their slots, so the drawn table mirrors the grid exactly.
func ToDOT(l timetable.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=plaintext, fontname=\"Helvetica\", fontsize=11];\n")

	if l.Empty || len(l.Slots) == 0 {
		fmt.Fprintf(&buf, "  empty [label=%q];\n", timetable.EmptyMessage)
		buf.WriteString("}\n")
		return buf.String()
	}

	buf.WriteString("  grid [label=<\n")
	buf.WriteString("<TABLE BORDER=\"0\" CELLBORDER=\"1\" CELLSPACING=\"0\" CELLPADDING=\"4\">\n")
	writeHeader(&buf, l, cmp.Or(opts.HeaderColor, defaultHeaderColor))
	writeBody(&buf, l, opts)
	buf.WriteString("</TABLE>\n")
	buf.WriteString("  >];\n")
	buf.WriteString("}\n")
	return buf.String()
}

func writeHeader(buf *bytes.Buffer, l timetable.Layout, bg string) {
	buf.WriteString("<TR>")
	fmt.Fprintf(buf, `<TD ROWSPAN="%d" BGCOLOR="%s"><B>Time</B></TD>`, l.HeaderRows, bg)

	if l.HeaderRows == 1 {
		for _, c := range l.Columns {
			fmt.Fprintf(buf, `<TD BGCOLOR="%s"><B>%s</B></TD>`, bg, esc(c.Label))
		}
		buf.WriteString("</TR>\n")
		return
	}

	// First row: venue spans; room-less venues and General take both rows.
	for i := 0; i < len(l.Columns); {
		c := l.Columns[i]
		s, ok := l.SpanOf(i)
		switch {
		case ok && c.RoomID != "":
			fmt.Fprintf(buf, `<TD COLSPAN="%d" BGCOLOR="%s"><B>%s</B></TD>`, s.Span, bg, esc(s.Name))
			i = s.StartColumn + s.Span
		default:
			fmt.Fprintf(buf, `<TD ROWSPAN="2" BGCOLOR="%s"><B>%s</B></TD>`, bg, esc(c.Label))
			i++
		}
	}
	buf.WriteString("</TR>\n<TR>")
	for _, c := range l.Columns {
		if c.RoomID != "" {
			fmt.Fprintf(buf, `<TD BGCOLOR="%s">%s</TD>`, bg, esc(c.Label))
		}
	}
	buf.WriteString("</TR>\n")
}

func writeBody(buf *bytes.Buffer, l timetable.Layout, opts Options) {
	loc := l.Location()

	starts := make(map[[2]int]timetable.Block)
	covered := make(map[[2]int]bool)
	for _, b := range l.Blocks() {
		starts[[2]int{b.StartRow, b.Column}] = b
		for r := b.StartRow + 1; r < b.EndRow; r++ {
			covered[[2]int{r, b.Column}] = true
		}
	}

	for i, s := range l.Slots {
		row := l.HeaderRows + 1 + i
		buf.WriteString("<TR>")
		fmt.Fprintf(buf, `<TD ALIGN="RIGHT"><FONT COLOR="#868E96">%s</FONT></TD>`, s.Time.In(loc).Format("15:04"))
		for c := range l.Columns {
			key := [2]int{row, c}
			if covered[key] {
				continue
			}
			b, ok := starts[key]
			if !ok {
				buf.WriteString("<TD></TD>")
				continue
			}
			// Layouts read from files may carry rows past the last slot.
			span := min(b.RowSpan(), len(l.Slots)-i)
			fmt.Fprintf(buf, `<TD ROWSPAN="%d" BGCOLOR="%s" ALIGN="LEFT" VALIGN="TOP">%s</TD>`,
				span, cmp.Or(b.Color(), defaultBlockColor), blockLabel(b, opts.Details, l))
		}
		buf.WriteString("</TR>\n")
	}
}

func blockLabel(b timetable.Block, details bool, l timetable.Layout) string {
	loc := l.Location()
	parts := make([]string, 0, len(b.Placements))
	for _, p := range b.Placements {
		s := "<B>" + esc(p.Title) + "</B>"
		if details {
			s += `<BR/><FONT POINT-SIZE="9">` + p.Start.In(loc).Format("15:04") + "–" + p.End.In(loc).Format("15:04")
			if len(p.Speakers) > 0 {
				s += "<BR/>" + esc(strings.Join(p.Speakers, ", "))
			}
			s += "</FONT>"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "<BR/>")
}

func esc(s string) string { return html.EscapeString(s) }

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from a zero
// origin, which lets browsers size it from width and height alone.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
