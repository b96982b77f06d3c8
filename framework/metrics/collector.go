// Package metrics exports container resolution statistics to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/km-arc/go-graph/framework/container"
)

// Collector holds the container metrics on its own registry. It implements
// container.Observer; install it with container.WithObserver.
type Collector struct {
	registry *prometheus.Registry

	Resolutions *prometheus.CounterVec
	Errors      *prometheus.CounterVec
	Upgrades    *prometheus.CounterVec
	Evictions   *prometheus.CounterVec
}

var _ container.Observer = (*Collector)(nil)

// NewCollector creates a collector whose metric names are prefixed with
// namespace. The Go runtime collector is registered alongside.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		Resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolutions_total",
				Help:      "Successful container resolutions by key, lifetime and cache result.",
			},
			[]string{"key", "lifetime", "result"},
		),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolution_errors_total",
				Help:      "Failed container resolutions by key and error kind.",
			},
			[]string{"key", "kind"},
		),
		Upgrades: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scope_upgrades_total",
				Help:      "Registrations turned into scoped registrations.",
			},
			[]string{"key"},
		),
		Evictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scope_evictions_total",
				Help:      "Scoped instances removed from a scope cache.",
			},
			[]string{"key"},
		),
	}

	registry.MustRegister(
		c.Resolutions,
		c.Errors,
		c.Upgrades,
		c.Evictions,
		collectors.NewGoCollector(),
	)
	return c
}

// Registry returns the underlying registry, e.g. to register app metrics.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) Resolved(key container.Key, lifetime container.Lifetime, cached bool) {
	result := "miss"
	if cached {
		result = "hit"
	}
	c.Resolutions.WithLabelValues(key.String(), lifetime.String(), result).Inc()
}

func (c *Collector) Failed(key container.Key, err error) {
	c.Errors.WithLabelValues(key.String(), container.ErrorKind(err)).Inc()
}

func (c *Collector) Upgraded(key container.Key) {
	c.Upgrades.WithLabelValues(key.String()).Inc()
}

func (c *Collector) Evicted(key container.Key) {
	c.Evictions.WithLabelValues(key.String()).Inc()
}
