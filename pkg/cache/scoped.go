package cache

// ScopedKeyer wraps a Keyer with a prefix so entries of different events
// live in separate namespaces and can be told apart when inspecting a shared
// Redis instance.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "event:gophercon:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer defaults
// to DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// EventKeyer returns a keyer scoped to one event.
func EventKeyer(inner Keyer, eventID string) Keyer {
	if eventID == "" {
		if inner == nil {
			return NewDefaultKeyer()
		}
		return inner
	}
	return NewScopedKeyer(inner, "event:"+eventID+":")
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
