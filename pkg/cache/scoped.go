package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one cache backend without seeing each other's entries.
//
// Example usage:
//
//	staging := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// TransformKey generates a prefixed key for transform caching.
func (k *ScopedKeyer) TransformKey(layoutHash string, opts TransformKeyOpts) string {
	return k.prefix + k.inner.TransformKey(layoutHash, opts)
}
