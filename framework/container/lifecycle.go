package container

import (
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// Lifetime is the caching policy of a registration.
type Lifetime int

const (
	Transient Lifetime = iota // new instance on every Get
	Singleton                 // one instance for the life of the registration
	Scoped                    // one instance per scope id
)

func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "transient"
	case Singleton:
		return "singleton"
	case Scoped:
		return "scoped"
	default:
		return "unknown"
	}
}

// ── Registry entries ──────────────────────────────────────────────────────────

// entry is what the registry stores per key. It is a closed set:
// *transientEntry, *singletonEntry and *scopedEntry.
type entry interface {
	lifetime() Lifetime

	// provide is the non-scoped resolution path. cached reports whether the
	// value came from a cache rather than a fresh Produce call.
	provide(g *Graph, arg any) (v any, cached bool, err error)
}

type transientEntry struct {
	factory Factory
}

func (e *transientEntry) lifetime() Lifetime { return Transient }

func (e *transientEntry) provide(g *Graph, arg any) (any, bool, error) {
	v, err := e.factory.Produce(g, arg)
	return v, false, err
}

// singletonEntry caches the first successful production. The build argument
// of later calls is ignored. The mutex is held across Produce so concurrent
// first calls still yield a single instance.
type singletonEntry struct {
	factory Factory

	mu       sync.Mutex
	cached   bool
	instance any
}

func (e *singletonEntry) lifetime() Lifetime { return Singleton }

func (e *singletonEntry) provide(g *Graph, arg any) (any, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cached {
		return e.instance, true, nil
	}
	v, err := e.factory.Produce(g, arg)
	if err != nil {
		return nil, false, err
	}
	e.instance, e.cached = v, true
	return v, false, nil
}

// scopedEntry wraps the entry that was registered for the key and keeps one
// instance per scope id. Non-scoped resolution goes straight to the delegate,
// so upgrading a key never changes what Get returns for it.
//
// mu guards the slot map and each slot's result; a slot's own mutex is held
// while its instance is produced, so a slow factory only blocks callers of
// the same scope.
type scopedEntry struct {
	delegate entry

	mu    sync.Mutex
	slots map[any]*scopeSlot
}

type scopeSlot struct {
	produce sync.Mutex

	ready    bool
	instance any
}

func newScopedEntry(delegate entry) *scopedEntry {
	return &scopedEntry{
		delegate: delegate,
		slots:    make(map[any]*scopeSlot),
	}
}

func (e *scopedEntry) lifetime() Lifetime { return Scoped }

func (e *scopedEntry) provide(g *Graph, arg any) (any, bool, error) {
	return e.delegate.provide(g, arg)
}

// provideIn returns the instance cached for scopeID, producing it through the
// delegate on first use. Failed productions are not cached. An instance
// whose scope is evicted while it is being produced is returned but not
// cached.
func (e *scopedEntry) provideIn(g *Graph, arg any, scopeID any) (any, bool, error) {
	for {
		slot := e.slot(scopeID)
		slot.produce.Lock()

		e.mu.Lock()
		current := e.slots[scopeID] == slot
		ready, v := slot.ready, slot.instance
		e.mu.Unlock()

		if !current {
			// evicted or failed while we waited; start over
			slot.produce.Unlock()
			continue
		}
		if ready {
			slot.produce.Unlock()
			return v, true, nil
		}

		v, _, err := e.delegate.provide(g, arg)

		e.mu.Lock()
		if e.slots[scopeID] == slot {
			if err != nil {
				delete(e.slots, scopeID)
			} else {
				slot.instance, slot.ready = v, true
			}
		}
		e.mu.Unlock()
		slot.produce.Unlock()

		if err != nil {
			return nil, false, err
		}
		return v, false, nil
	}
}

// slot returns the slot for scopeID, creating an empty one if needed.
func (e *scopedEntry) slot(scopeID any) *scopeSlot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.slots[scopeID]
	if !ok {
		s = &scopeSlot{}
		e.slots[scopeID] = s
	}
	return s
}

// remove evicts scopeID and reports whether an instance was cached for it.
func (e *scopedEntry) remove(scopeID any) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.slots[scopeID]
	delete(e.slots, scopeID)
	return ok && s.ready
}

// size returns the number of cached instances.
func (e *scopedEntry) size() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, s := range e.slots {
		if s.ready {
			n++
		}
	}
	return n
}

// upgrade returns e as a scoped entry, wrapping it if it is not one yet.
func upgrade(e entry) (s *scopedEntry, created bool) {
	switch v := e.(type) {
	case *scopedEntry:
		return v, false
	default:
		return newScopedEntry(e), true
	}
}

// ── Scope ids ─────────────────────────────────────────────────────────────────

// NewScopeID returns a fresh random scope id.
//
//	id := container.NewScopeID()
//	svc, _ := container.ResolveScoped[*Session](g, id)
//	defer container.Release[*Session](g, id)
func NewScopeID() string {
	return uuid.NewString()
}

// validScopeID reports whether id can be used as a map key.
func validScopeID(id any) bool {
	if id == nil {
		return true
	}
	return reflect.ValueOf(id).Comparable()
}
