package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants or
// environments can share one Redis instance.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "svgbudget:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means the
// default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// OptimizeKey returns the prefixed optimization key.
func (k *ScopedKeyer) OptimizeKey(inputHash string, opts OptimizeKeyOpts) string {
	return k.prefix + k.inner.OptimizeKey(inputHash, opts)
}

// SceneKey returns the prefixed scene key.
func (k *ScopedKeyer) SceneKey(specHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(specHash, opts)
}
