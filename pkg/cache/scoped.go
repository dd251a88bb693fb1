package cache

// scopedKeyer prepends a fixed prefix to every key produced by the
// wrapped keyer. Deployments sharing one backend between tenants give
// each tenant its own scope:
//
//	perWorkspace := NewScopedKeyer(nil, "ws:abc123:")
//
// while single-tenant setups use the default keyer directly.
type scopedKeyer struct {
	inner Keyer
	scope string
}

// NewScopedKeyer wraps inner so all generated keys carry prefix. A nil
// inner falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return scopedKeyer{inner: inner, scope: prefix}
}

func (k scopedKeyer) HTTPKey(namespace, key string) string {
	return k.scope + k.inner.HTTPKey(namespace, key)
}

func (k scopedKeyer) EventsKey(sourceHash string) string {
	return k.scope + k.inner.EventsKey(sourceHash)
}

func (k scopedKeyer) SceneKey(eventsHash, styleHash string) string {
	return k.scope + k.inner.SceneKey(eventsHash, styleHash)
}

func (k scopedKeyer) ImageKey(sceneHash string, opts ImageKeyOpts) string {
	return k.scope + k.inner.ImageKey(sceneHash, opts)
}
