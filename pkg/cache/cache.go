// Package cache provides the artifact cache used by the schedgrid pipeline.
//
// Layouts are cheap to compute and never cached; rendered artifacts (SVG,
// DOT, text) are keyed by the hash of the layout they were drawn from. Since
// the grid computation is deterministic, equal layouts always produce equal
// artifacts and a hit can be served without rendering.
//
// Three backends implement [Cache]:
//   - [NullCache] disables caching
//   - [FileCache] stores entries under a directory (CLI)
//   - [RedisCache] stores entries in Redis (HTTP server)
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value stored under key. The bool is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLArtifact is how long rendered artifacts are kept.
const TTLArtifact = 7 * 24 * time.Hour

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for an artifact rendered from a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Color   bool   `json:"color,omitempty"`
	Details bool   `json:"details,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
