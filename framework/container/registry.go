package container

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// registry maps keys to entries. At most one entry exists per key.
type registry struct {
	mu      sync.RWMutex
	entries map[Key]entry
	log     *zap.Logger
}

func newRegistry(log *zap.Logger) *registry {
	return &registry{
		entries: make(map[Key]entry),
		log:     log,
	}
}

// register stores f under key, replacing any previous entry.
func (r *registry) register(key Key, f Factory, singleton bool) {
	var e entry = &transientEntry{factory: f}
	if singleton {
		e = &singletonEntry{factory: f}
	}

	r.mu.Lock()
	_, replaced := r.entries[key]
	r.entries[key] = e
	r.mu.Unlock()

	r.log.Debug("container: registered",
		zap.Stringer("key", key),
		zap.Stringer("lifetime", e.lifetime()),
		zap.Bool("replaced", replaced),
	)
}

func (r *registry) resolve(key Key) (entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key]
	if !ok {
		return nil, &NotFoundError{Key: key}
	}
	return e, nil
}

// resolveScoped returns the scoped entry for key, replacing a transient or
// singleton entry with a scoped wrapper around it on first use. upgraded
// reports whether this call performed the replacement.
func (r *registry) resolveScoped(key Key) (s *scopedEntry, upgraded bool, err error) {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return nil, false, &NotFoundError{Key: key}
	}
	if s, ok := e.(*scopedEntry); ok {
		return s, false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-read: another goroutine may have upgraded, replaced or cleared it.
	e, ok = r.entries[key]
	if !ok {
		return nil, false, &NotFoundError{Key: key}
	}
	s, upgraded = upgrade(e)
	if upgraded {
		r.entries[key] = s
		r.log.Debug("container: upgraded to scoped",
			zap.Stringer("key", key),
			zap.Stringer("from", e.lifetime()),
		)
	}
	return s, upgraded, nil
}

func (r *registry) clear() {
	r.mu.Lock()
	n := len(r.entries)
	r.entries = make(map[Key]entry)
	r.mu.Unlock()

	r.log.Debug("container: cleared", zap.Int("entries", n))
}

func (r *registry) has(key Key) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

// keys returns every registered key sorted by name.
func (r *registry) keys() []Key {
	r.mu.RLock()
	out := make([]Key, 0, len(r.entries))
	for k := range r.entries {
		out = append(out, k)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
