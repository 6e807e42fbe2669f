package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/schedgrid/pkg/buildinfo"
	"github.com/matzehuels/schedgrid/pkg/cache"
	"github.com/matzehuels/schedgrid/pkg/errors"
	pkgio "github.com/matzehuels/schedgrid/pkg/io"
)

// DefaultTTL is how long a fetched feed is served from the cache.
const DefaultTTL = time.Hour

// maxFeedBytes bounds the size of a downloaded document.
const maxFeedBytes = 4 << 20

// Feed is a downloaded schedule document.
type Feed struct {
	URL    string
	Body   []byte
	Format string
	Cached bool
}

// entry is the cached form of a Feed.
type entry struct {
	Format string `json:"format"`
	Body   []byte `json:"body"`
}

// Fetcher downloads schedule feeds. The zero value is not usable; create
// one with [NewFetcher].
type Fetcher struct {
	Client *http.Client

	cache cache.Cache
	ttl   time.Duration
}

// NewFetcher returns a Fetcher that caches bodies in c for ttl. A nil cache
// disables caching; a zero ttl uses DefaultTTL.
func NewFetcher(c cache.Cache, ttl time.Duration) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Fetcher{Client: &http.Client{Timeout: 30 * time.Second}, cache: c, ttl: ttl}
}

// IsURL reports whether s names an http or https resource.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch returns the document at rawURL, from the cache unless refresh is
// set. Only successful downloads are cached.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, refresh bool) (Feed, error) {
	if !IsURL(rawURL) {
		return Feed{}, errors.New(errors.ErrCodeInvalidInput, "not an http(s) url: %q", rawURL)
	}
	key := feedKey(rawURL)

	if !refresh {
		if data, ok, err := f.cache.Get(ctx, key); err == nil && ok {
			var e entry
			if json.Unmarshal(data, &e) == nil {
				return Feed{URL: rawURL, Body: e.Body, Format: e.Format, Cached: true}, nil
			}
		}
	}

	var feed Feed
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		feed, err = f.get(ctx, rawURL)
		return err
	})
	if err != nil {
		return Feed{}, err
	}

	if data, err := json.Marshal(entry{Format: feed.Format, Body: feed.Body}); err == nil {
		_ = f.cache.Set(ctx, key, data, f.ttl)
	}
	return feed, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Feed{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("User-Agent", buildinfo.ServerHeader())
	req.Header.Set("Accept", "application/json, application/toml;q=0.9, */*;q=0.5")

	resp, err := f.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Feed{}, ctx.Err()
		}
		return Feed{}, cache.Retryable(errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", rawURL))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Feed{}, errors.New(errors.ErrCodeFileNotFound, "feed %s not found", rawURL)
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= 500:
		return Feed{}, cache.Retryable(fmt.Errorf("fetch %s: %s", rawURL, resp.Status))
	case resp.StatusCode >= 300:
		return Feed{}, errors.New(errors.ErrCodeInvalidInput, "fetch %s: %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes+1))
	if err != nil {
		return Feed{}, cache.Retryable(fmt.Errorf("read %s: %w", rawURL, err))
	}
	if len(body) > maxFeedBytes {
		return Feed{}, errors.New(errors.ErrCodeInvalidInput, "feed %s exceeds %d bytes", rawURL, maxFeedBytes)
	}
	return Feed{URL: rawURL, Body: body, Format: formatOf(rawURL, resp.Header.Get("Content-Type"))}, nil
}

// formatOf picks the document format from the URL path, then the media
// type.
func formatOf(rawURL, contentType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if format, err := pkgio.FormatFromPath(u.Path); err == nil {
			return format
		}
	}
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && strings.Contains(mt, "toml") {
		return pkgio.FormatTOML
	}
	return pkgio.FormatJSON
}

func feedKey(rawURL string) string {
	return "feed:" + cache.Hash([]byte(rawURL))
}
