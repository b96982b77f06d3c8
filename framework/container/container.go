package container

import (
	"go.uber.org/zap"
)

// ── Graph ─────────────────────────────────────────────────────────────────────

// Graph is the resolution engine: it looks up the entry registered for a key
// and applies its lifetime.
//
// A Graph is safe for concurrent use. Build one with NewBuilder(...).Build(),
// or start from an empty one with New and register live.
type Graph struct {
	reg *registry
	log *zap.Logger
	obs Observer
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	return newGraph(buildOptions(opts))
}

func newGraph(o options) *Graph {
	return &Graph{
		reg: newRegistry(o.logger),
		log: o.logger,
		obs: o.observer,
	}
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register stores f under key, as a singleton when singleton is true. A
// previous registration for key is replaced along with anything it cached.
func (g *Graph) Register(key Key, f Factory, singleton bool) {
	g.reg.register(key, f, singleton)
}

// Add registers a transient factory: every Get calls it.
//
//	g.Add(container.KeyOf[Greeter](), container.FactoryFunc(
//	    func(*container.Graph, any) (any, error) { return &HelloGreeter{}, nil }))
func (g *Graph) Add(key Key, f Factory) *Graph {
	g.Register(key, f, false)
	return g
}

// AddSingleton registers a factory whose first result is reused forever.
func (g *Graph) AddSingleton(key Key, f Factory) *Graph {
	g.Register(key, f, true)
	return g
}

// Clear removes every registration.
func (g *Graph) Clear() {
	g.reg.clear()
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get resolves key without a build argument.
func (g *Graph) Get(key Key) (any, error) {
	return g.GetWith(key, nil)
}

// GetWith resolves key, passing arg to the factory. Singletons ignore arg
// once they hold an instance. On a key that has been used scoped, GetWith
// bypasses the scope caches and behaves as the original registration did.
func (g *Graph) GetWith(key Key, arg any) (any, error) {
	e, err := g.reg.resolve(key)
	if err != nil {
		return nil, g.fail(key, err)
	}
	v, cached, err := e.provide(g, arg)
	if err != nil {
		return nil, g.fail(key, err)
	}
	g.obs.Resolved(key, e.lifetime(), cached)
	return v, nil
}

// GetScoped resolves key within scopeID: the first call for a scope produces
// an instance, later calls for the same scope return it.
func (g *Graph) GetScoped(key Key, scopeID any) (any, error) {
	return g.GetScopedWith(key, nil, scopeID)
}

// GetScopedWith is GetScoped with a build argument. The argument only matters
// when the scope has no instance yet.
//
// The first scoped call for a key turns its registration into a scoped one for
// good; see GetWith for how plain resolution behaves afterwards.
func (g *Graph) GetScopedWith(key Key, arg any, scopeID any) (any, error) {
	s, err := g.scoped(key, scopeID)
	if err != nil {
		return nil, err
	}
	v, cached, err := s.provideIn(g, arg, scopeID)
	if err != nil {
		return nil, g.fail(key, err)
	}
	g.obs.Resolved(key, Scoped, cached)
	return v, nil
}

// RemoveScoped evicts the instance cached for scopeID. Evicting a scope that
// holds nothing is not an error. The key must be registered.
func (g *Graph) RemoveScoped(key Key, scopeID any) error {
	s, err := g.scoped(key, scopeID)
	if err != nil {
		return err
	}
	if s.remove(scopeID) {
		g.obs.Evicted(key)
		g.log.Debug("container: scope evicted",
			zap.Stringer("key", key),
			zap.Any("scope", scopeID),
		)
	}
	return nil
}

// scoped validates scopeID and returns the scoped entry for key, upgrading it
// if needed.
func (g *Graph) scoped(key Key, scopeID any) (*scopedEntry, error) {
	if !validScopeID(scopeID) {
		return nil, g.fail(key, &ScopeError{Key: key, ScopeID: scopeID})
	}
	s, upgraded, err := g.reg.resolveScoped(key)
	if err != nil {
		return nil, g.fail(key, err)
	}
	if upgraded {
		g.obs.Upgraded(key)
	}
	return s, nil
}

func (g *Graph) fail(key Key, err error) error {
	g.obs.Failed(key, err)
	return err
}

// ── Introspection ─────────────────────────────────────────────────────────────

// Bound reports whether key has a registration.
func (g *Graph) Bound(key Key) bool {
	return g.reg.has(key)
}

// Bindings returns all registered keys sorted by name (for debugging).
func (g *Graph) Bindings() []Key {
	return g.reg.keys()
}

// Lifetime returns the current lifetime of key's registration. It reports
// Scoped once the key has been used with GetScoped or RemoveScoped.
func (g *Graph) Lifetime(key Key) (Lifetime, error) {
	e, err := g.reg.resolve(key)
	if err != nil {
		return 0, err
	}
	return e.lifetime(), nil
}
