// Package dot renders a timetable layout through Graphviz.
//
// [ToDOT] emits a graph with one plaintext node whose label is an HTML-like
// table. Graphviz lays tables out cell by cell, which gives ROWSPAN and
// COLSPAN for free: venue headers span their rooms and session blocks span
// their slots.
//
//	src := dot.ToDOT(layout, dot.Options{Details: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// SVG output uses [github.com/goccy/go-graphviz], which bundles Graphviz as
// WebAssembly, so no system installation is needed.
package dot
