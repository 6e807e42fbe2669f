// Package pkg provides the core libraries for schedgrid, which lays out event
// schedules as day timetable grids.
//
// # Overview
//
// A schedule (venues with rooms, and timed sessions) becomes a grid of time
// rows by venue/room columns. The pkg directory is organized into four areas:
//
//  1. Domain model: [schedule] and the [io] document formats
//  2. Layout: [grid] computes the grid, [timetable] serializes it
//  3. Output: [render] draws a layout as text, agenda, DOT or SVG
//  4. Orchestration: [pipeline] ties selection, layout, render and caching
//     together on top of [cache] and [storage]
//
// # Architecture
//
// The typical data flow:
//
//	schedule document (file, URL, store)
//	         ↓
//	    [io] / [httputil] (decode, resolve references)
//	         ↓
//	    [pipeline] (select one day, filter by track, type, text)
//	         ↓
//	    [grid] (normalize domain → slots → columns → placements)
//	         ↓
//	    [timetable] Layout (JSON)
//	         ↓
//	    [render] text / agenda / DOT / SVG
//
// # Quick Start
//
//	ev, _ := io.ImportFile("devfest.toml")
//	runner := pipeline.NewRunner(nil, cache.NewNullCache(), nil, logger)
//	res, _ := runner.Execute(ctx, ev, pipeline.Options{
//	    Day:     "2025-06-10",
//	    Formats: []string{"text"},
//	})
//	os.Stdout.Write(res.Artifacts["text"])
//
// # Main Packages
//
// [grid] - The layout engine. The time domain is clamped to the business
// window (09:30 to 19:00 by default) and snapped outward to the quantum
// (15 minutes). Each venue yields one column per room, or a single column
// when it has none, and a trailing General column catches sessions without
// a venue. Sessions whose venue or room is unknown are dropped.
//
// [pipeline] - Options, selection and the [pipeline.Runner], which loads
// events from a store, retries transient failures and caches rendered
// artifacts by layout hash.
//
// [storage] - Event stores: in-memory for the CLI and tests, MongoDB for
// the HTTP server.
//
// [cache] - Artifact caches (file, Redis, none) and retry helpers.
//
// [errors] - Coded errors mapped to HTTP status codes and user messages.
//
// [observability] - Hooks for request, layout and render events.
//
// [schedule]: https://pkg.go.dev/github.com/matzehuels/schedgrid/pkg/schedule
// [io]: https://pkg.go.dev/github.com/matzehuels/schedgrid/pkg/io
// [httputil]: https://pkg.go.dev/github.com/matzehuels/schedgrid/pkg/httputil
// [grid]: https://pkg.go.dev/github.com/matzehuels/schedgrid/pkg/grid
// [timetable]: https://pkg.go.dev/github.com/matzehuels/schedgrid/pkg/timetable
// [render]: https://pkg.go.dev/github.com/matzehuels/schedgrid/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/schedgrid/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/schedgrid/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/schedgrid/pkg/cache
// [storage]: https://pkg.go.dev/github.com/matzehuels/schedgrid/pkg/storage
// [errors]: https://pkg.go.dev/github.com/matzehuels/schedgrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/schedgrid/pkg/observability
package pkg
