package container

import "go.uber.org/zap"

// Observer receives resolution events. framework/metrics provides a
// Prometheus implementation. Methods are called synchronously on the
// resolving goroutine and must not call back into the graph.
type Observer interface {
	// Resolved is called after a successful resolution. cached is true when
	// the instance came from a singleton or scope cache.
	Resolved(key Key, lifetime Lifetime, cached bool)
	// Failed is called when a resolution or eviction returns an error.
	Failed(key Key, err error)
	// Upgraded is called once per key, when its entry becomes scoped.
	Upgraded(key Key)
	// Evicted is called when RemoveScoped dropped a cached instance.
	Evicted(key Key)
}

type nopObserver struct{}

func (nopObserver) Resolved(Key, Lifetime, bool) {}
func (nopObserver) Failed(Key, error)            {}
func (nopObserver) Upgraded(Key)                 {}
func (nopObserver) Evicted(Key)                  {}

type options struct {
	logger   *zap.Logger
	observer Observer
}

// Option configures a Builder or Graph.
type Option func(*options)

// WithLogger sets the logger used for debug output. Defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver installs an Observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:   zap.NewNop(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
