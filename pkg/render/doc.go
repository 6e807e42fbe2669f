// Package render turns a timetable layout into output artifacts.
//
// Each format lives in its own subpackage; this package dispatches by name:
//
//   - json: the layout itself (see [timetable.Layout])
//   - text: a terminal table ([text])
//   - agenda: a chronological list ([agenda])
//   - dot: Graphviz source with an HTML-like table ([dot])
//   - svg: the DOT source rendered by the embedded Graphviz
//
// Renderers only read the layout. The same layout always renders to the same
// bytes, which is what makes artifacts safe to cache by layout hash.
//
//	data, err := render.Render(ctx, layout, render.FormatSVG)
//
// [text]: github.com/matzehuels/schedgrid/pkg/render/text
// [agenda]: github.com/matzehuels/schedgrid/pkg/render/agenda
// [dot]: github.com/matzehuels/schedgrid/pkg/render/dot
package render
