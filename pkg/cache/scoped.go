package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The admin platform serves multiple partners; each partner's layouts
// and artifacts live in their own cache namespace.
//
// Example usage:
//
//	// Partner-specific keys for private pages
//	partnerKeyer := NewScopedKeyer(NewDefaultKeyer(), "partner:abc123:")
//
//	// Global keys for shared template pages
//	globalKeyer := NewDefaultKeyer()
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

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(inputHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// PageKey generates a prefixed key for page caching.
func (k *ScopedKeyer) PageKey(pageID string) string {
	return k.prefix + k.inner.PageKey(pageID)
}
