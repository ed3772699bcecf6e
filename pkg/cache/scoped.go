package cache

// ScopedKeyer prefixes every key of an inner keyer, so several deployments
// or tenants can share one Redis or Mongo backend:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(topologyHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(topologyHash, opts)
}

func (k *ScopedKeyer) FlowKey(topologyHash string, opts FlowKeyOpts) string {
	return k.prefix + k.inner.FlowKey(topologyHash, opts)
}
