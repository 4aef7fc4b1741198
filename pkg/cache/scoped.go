package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis without their keys colliding.
//
// Example usage:
//
//	staging := NewScopedKeyer(NewDefaultKeyer(), "staging:")
//	staging.GaugeKey("cpu") // "staging:gauge:cpu"
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
func (k *ScopedKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(configHash, opts)
}

// GaugeKey generates a prefixed key for a live gauge definition.
func (k *ScopedKeyer) GaugeKey(name string) string {
	return k.prefix + k.inner.GaugeKey(name)
}
