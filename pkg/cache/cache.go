// Package cache stores optimization and generation results keyed by a hash
// of their inputs.
//
// Backends:
//   - [FileCache]: JSON entries under a directory, for CLI usage
//   - [RedisCache]: shared cache for multi-instance API deployments
//   - [MemoryCache]: process-local map, for tests and a single API process
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] so that callers never build them by hand.
// Values are opaque bytes; the pipeline stores JSON-encoded results.
package cache

import (
	"context"
	"time"
)

// Default TTLs per result type.
const (
	// TTLOptimize applies to optimized documents.
	TTLOptimize = 7 * 24 * time.Hour

	// TTLScene applies to rendered scenes.
	TTLScene = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
// Get reports a miss with hit == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (removed int, err error)
}

// Clear empties c when it supports it and reports how many entries were
// removed. Caches without Clear report zero.
func Clear(ctx context.Context, c Cache) (int, error) {
	if cl, ok := c.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return 0, nil
}

// OptimizeKeyOpts are the options that change an optimization result.
type OptimizeKeyOpts struct {
	Profile         string   `json:"profile"`
	MaxBytes        int      `json:"max_bytes"`
	DisableGrouping bool     `json:"disable_grouping,omitempty"`
	Namespaces      []string `json:"namespaces,omitempty"`
}

// SceneKeyOpts are the options that change a generated scene.
type SceneKeyOpts struct {
	Optimize bool            `json:"optimize"`
	Compress OptimizeKeyOpts `json:"compress"`
}

// Keyer builds cache keys.
type Keyer interface {
	// OptimizeKey is the key for the optimized form of a document.
	OptimizeKey(inputHash string, opts OptimizeKeyOpts) string
	// SceneKey is the key for a scene rendered from a spec.
	SceneKey(specHash string, opts SceneKeyOpts) string
}

// DefaultKeyer hashes the input hash together with its options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// OptimizeKey returns "optimize:<sha256>".
func (DefaultKeyer) OptimizeKey(inputHash string, opts OptimizeKeyOpts) string {
	return hashKey("optimize", inputHash, opts)
}

// SceneKey returns "scene:<sha256>".
func (DefaultKeyer) SceneKey(specHash string, opts SceneKeyOpts) string {
	return hashKey("scene", specHash, opts)
}
