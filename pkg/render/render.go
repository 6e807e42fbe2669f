package render

import (
	"context"
	"slices"
	"strings"

	"github.com/matzehuels/schedgrid/pkg/errors"
	"github.com/matzehuels/schedgrid/pkg/render/agenda"
	"github.com/matzehuels/schedgrid/pkg/render/dot"
	"github.com/matzehuels/schedgrid/pkg/render/text"
	"github.com/matzehuels/schedgrid/pkg/timetable"
)

// Output formats.
const (
	FormatJSON   = "json"
	FormatText   = "text"
	FormatAgenda = "agenda"
	FormatDOT    = "dot"
	FormatSVG    = "svg"
)

// Formats lists every supported format.
var Formats = []string{FormatJSON, FormatText, FormatAgenda, FormatDOT, FormatSVG}

// Options tweaks individual renderers.
type Options struct {
	// Color enables ANSI colors in text output.
	Color bool
	// Details adds times and speakers to DOT and SVG cells.
	Details bool
}

// ValidateFormat reports whether format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (valid: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// Render produces the artifact for one format.
func Render(ctx context.Context, l timetable.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return timetable.MarshalLayout(l)
	case FormatText:
		return []byte(text.Render(l, text.Options{Color: opts.Color})), nil
	case FormatAgenda:
		return []byte(agenda.Render(l)), nil
	case FormatDOT:
		return []byte(dot.ToDOT(l, dot.Options{Details: opts.Details})), nil
	case FormatSVG:
		return dot.RenderSVG(ctx, dot.ToDOT(l, dot.Options{Details: opts.Details}))
	default:
		return nil, ValidateFormat(format)
	}
}

// ContentType returns the MIME type served for format.
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatSVG:
		return "image/svg+xml"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Ext returns the file extension written for format.
func Ext(format string) string {
	switch format {
	case FormatText:
		return "txt"
	case FormatAgenda:
		return "agenda.txt"
	default:
		return format
	}
}
