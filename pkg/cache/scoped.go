package cache

// ScopedKeyer wraps a Keyer with a prefix so separate contexts get
// separate cache namespaces, e.g. one namespace per API tenant while
// the CLI shares the global one.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// DiagramKey generates a prefixed diagram content key.
func (k *ScopedKeyer) DiagramKey(source []byte) string {
	return k.prefix + k.inner.DiagramKey(source)
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(diagramHash string, cfg any) string {
	return k.prefix + k.inner.LayoutKey(diagramHash, cfg)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(diagramHash string, format string, opts any) string {
	return k.prefix + k.inner.ArtifactKey(diagramHash, format, opts)
}

var _ Keyer = (*ScopedKeyer)(nil)
