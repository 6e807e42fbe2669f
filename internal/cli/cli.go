package cli

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/schedgrid/pkg/cache"
	"github.com/matzehuels/schedgrid/pkg/httputil"
	pkgio "github.com/matzehuels/schedgrid/pkg/io"
	"github.com/matzehuels/schedgrid/pkg/pipeline"
	"github.com/matzehuels/schedgrid/pkg/schedule"
	"github.com/matzehuels/schedgrid/pkg/storage"
	"github.com/matzehuels/schedgrid/pkg/storage/memory"
	"github.com/matzehuels/schedgrid/pkg/storage/mongo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "schedgrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Backends
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The CLI passes events in
// directly, so the runner has no store.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(nil, ch, nil, c.Logger), nil
}

// newCache builds the configured artifact cache. An unusable cache
// directory degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.Cache
	switch cfg.Backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cmp.Or(cfg.RedisPrefix, appName+":"),
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore opens the configured event store.
func (c *CLI) newStore(ctx context.Context) (storage.Store, error) {
	cfg := c.Config.Store
	if cfg.Backend != backendMongo {
		return memory.New(), nil
	}
	st, err := mongo.Open(ctx, mongo.Options{
		URI:        cfg.MongoURI,
		Database:   cfg.Database,
		Collection: cfg.Collection,
		Timeout:    cfg.Timeout.Duration,
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// loadSchedule reads a schedule document from a file or an http(s) URL.
// Fetched feeds share the artifact cache; refresh skips it.
func (c *CLI) loadSchedule(ctx context.Context, input string, refresh bool) (*schedule.Event, error) {
	if !httputil.IsURL(input) {
		return pkgio.ImportFile(input)
	}
	ch, err := c.newCache(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("initialize cache: %w", err)
	}
	defer ch.Close()

	feed, err := httputil.NewFetcher(ch, c.Config.Cache.FeedTTL.Duration).Fetch(ctx, input, refresh)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("fetched schedule", "url", input, "format", feed.Format, "bytes", len(feed.Body), "cached", feed.Cached)

	ev, err := pkgio.ReadSchedule(bytes.NewReader(feed.Body), feed.Format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	return ev, nil
}

// =============================================================================
// Paths
// =============================================================================

// inputBase strips the extension from a schedule path. URLs map to the last
// path element in the working directory, or to the host name when the path
// is empty.
func inputBase(input string) string {
	if httputil.IsURL(input) {
		u, _ := url.Parse(input)
		name := path.Base(u.Path)
		if name == "/" || name == "." {
			return u.Hostname()
		}
		return strings.TrimSuffix(name, path.Ext(name))
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// cacheDir returns the configured cache directory or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/schedgrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// applyConfig fills unset grid options from the config file. Anything still
// unset takes the pipeline default during validation.
func (c *CLI) applyConfig(opts *pipeline.Options) {
	c.Config.Grid.apply(opts)
	opts.Logger = c.Logger
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
