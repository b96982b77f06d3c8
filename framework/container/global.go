package container

import "sync"

// ── Default graph ─────────────────────────────────────────────────────────────

// The package-level functions below forward to a process-wide Graph for code
// that cannot thread a *Graph through. It is the same engine; prefer passing
// a Graph explicitly where you can.

var (
	defaultMu    sync.RWMutex
	defaultGraph = New()
)

// Default returns the process-wide graph.
func Default() *Graph {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultGraph
}

// Init replaces the process-wide graph with a fresh, empty one configured
// with opts, and returns it.
func Init(opts ...Option) *Graph {
	g := New(opts...)
	defaultMu.Lock()
	defaultGraph = g
	defaultMu.Unlock()
	return g
}

// Reset clears every registration of the process-wide graph.
func Reset() {
	Default().Clear()
}

// Add registers a transient factory on the process-wide graph.
func Add(key Key, f Factory) *Graph { return Default().Add(key, f) }

// AddSingleton registers a singleton factory on the process-wide graph.
func AddSingleton(key Key, f Factory) *Graph { return Default().AddSingleton(key, f) }

// Get resolves key from the process-wide graph.
func Get(key Key) (any, error) { return Default().Get(key) }

// GetWith resolves key from the process-wide graph with a build argument.
func GetWith(key Key, arg any) (any, error) { return Default().GetWith(key, arg) }

// GetScoped resolves key within scopeID from the process-wide graph.
func GetScoped(key Key, scopeID any) (any, error) { return Default().GetScoped(key, scopeID) }

// GetScopedWith resolves key within scopeID from the process-wide graph with
// a build argument.
func GetScopedWith(key Key, arg any, scopeID any) (any, error) {
	return Default().GetScopedWith(key, arg, scopeID)
}

// RemoveScoped evicts scopeID for key on the process-wide graph.
func RemoveScoped(key Key, scopeID any) error { return Default().RemoveScoped(key, scopeID) }
