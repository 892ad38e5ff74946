// Package cache provides caching for solved block layouts and rendered
// artifacts.
//
// The solver itself is pure and stateless; caching of resolved layouts
// belongs to the calling layer. This package gives that layer a small
// Cache interface with three backends:
//
//   - FileCache: local disk cache for CLI usage
//   - RedisCache: shared cache for the API server
//   - NullCache: caching disabled
//
// Keys are produced by a Keyer so that every consumer derives identical keys
// for identical inputs, and a ScopedKeyer can prefix keys for multi-tenant
// isolation.
package cache

import (
	"context"
	"time"
)

// TTLs for the different cached value kinds.
const (
	// TTLLayout is how long solved block layouts stay cached. Layouts are
	// deterministic in their inputs, so the TTL only bounds cache growth.
	TTLLayout = 24 * time.Hour

	// TTLArtifact is how long rendered artifacts (SVG, JSON) stay cached.
	TTLArtifact = 24 * time.Hour

	// TTLPage is how long assembled page documents stay cached; pages are
	// editable upstream so this is deliberately short.
	TTLPage = 10 * time.Minute
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration; a
	// negative TTL stores an entry that is already expired.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the solver options that affect a cached layout.
type LayoutKeyOpts struct {
	MaxAllowedHeight float64
	BlockRatio       float64
	SoftRatio        bool
	MinFontPx        float64
	BaseFontPx       float64
}

// ArtifactKeyOpts are the render options that affect a cached artifact.
type ArtifactKeyOpts struct {
	Format string
}

// Keyer generates cache keys for the different value kinds.
type Keyer interface {
	// LayoutKey generates a key for a solved layout, from the content hash
	// of the block input and the solver options.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, from the content
	// hash of the layout and the render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string

	// PageKey generates a key for an assembled page document.
	PageKey(pageID string) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a solved layout.
func (k *DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// PageKey generates a key for an assembled page document.
func (k *DefaultKeyer) PageKey(pageID string) string {
	return "page:" + pageID
}
