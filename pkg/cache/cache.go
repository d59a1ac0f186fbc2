// Package cache provides pluggable byte caches and the key scheme for
// the rendering pipeline's per-stage caching.
package cache

import (
	"context"
	"time"
)

// Default TTLs per stage. Layouts are cheap to recompute but keyed
// deterministically, so they can live long; rendered artifacts are
// larger and expire sooner.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte store with TTL expiry. Implementations must treat a
// missing key as (nil, false, nil), not an error.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}

// Keyer generates cache keys for the pipeline stages. Keys are content
// hashes of id-free inputs, so re-parsing the same document (which
// mints fresh entity ids) still maps to the same entries.
type Keyer interface {
	// DiagramKey hashes the diagram content, typically its canonical
	// textual form.
	DiagramKey(source []byte) string

	// LayoutKey keys a layout result by diagram hash and layout config.
	LayoutKey(diagramHash string, cfg any) string

	// ArtifactKey keys a rendered artifact by diagram hash, output
	// format, and the render-affecting options (style plus layout
	// config). Layout is a pure function of diagram and config, so the
	// diagram hash covers both the text content and the geometry.
	ArtifactKey(diagramHash string, format string, opts any) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DiagramKey generates a key from the diagram bytes.
func (k *DefaultKeyer) DiagramKey(source []byte) string {
	return "diagram:" + Hash(source)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(diagramHash string, cfg any) string {
	return hashKey("layout", diagramHash, cfg)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(diagramHash string, format string, opts any) string {
	return hashKey("artifact", diagramHash, format, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
