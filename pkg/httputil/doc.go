// Package httputil fetches schedule documents published over HTTP.
//
// Conference platforms usually expose the programme as a JSON or TOML feed.
// A [Fetcher] downloads such a feed, retries transient failures (network
// errors, 5xx and 429 responses) and keeps the body in a [cache.Cache] so
// repeated commands do not hit the origin:
//
//	f := httputil.NewFetcher(fileCache, time.Hour)
//	feed, err := f.Fetch(ctx, "https://example.com/devfest.json", false)
//	ev, err := pkgio.ReadSchedule(bytes.NewReader(feed.Body), feed.Format)
//
// The document format comes from the URL extension, then the Content-Type
// header, and defaults to JSON.
//
// [cache.Cache]: github.com/matzehuels/schedgrid/pkg/cache.Cache
package httputil
