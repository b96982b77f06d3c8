package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-graph/framework/config"
	"github.com/km-arc/go-graph/framework/container"
	"github.com/km-arc/go-graph/framework/metrics"
	"github.com/km-arc/go-graph/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the loaded configuration.
//
// Bound keys:
//   - *config.Config  (singleton)
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(r container.Registrar) {
	r.Register(container.KeyOf[*config.Config](), container.Value(p.Config), true)
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the application logger.
//
// Bound keys:
//   - *zap.Logger  (singleton)
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(r container.Registrar) {
	r.Register(container.KeyOf[*zap.Logger](), container.Value(p.Logger), true)
}

// ── MetricsServiceProvider ────────────────────────────────────────────────────

// MetricsServiceProvider binds the Prometheus collector the graph reports to.
//
// Bound keys:
//   - *metrics.Collector  (singleton)
type MetricsServiceProvider struct {
	container.BaseProvider
	Collector *metrics.Collector
}

func (p *MetricsServiceProvider) Register(r container.Registrar) {
	r.Register(container.KeyOf[*metrics.Collector](), container.Value(p.Collector), true)
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router. The metrics endpoint is
// mounted when metrics are enabled and a collector is bound.
//
// Bound keys:
//   - *routing.Router  (singleton)
//
// Requires *config.Config and *zap.Logger.
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(r container.Registrar) {
	container.BindSingleton(r, container.Supplier[*routing.Router, struct{}](newRouter))
}

// Boot builds the router eagerly so missing dependencies surface at startup.
func (p *RoutingServiceProvider) Boot(g *container.Graph) error {
	_, err := container.Resolve[*routing.Router](g)
	return err
}

func newRouter(g *container.Graph, _ struct{}) (*routing.Router, error) {
	cfg, err := container.Resolve[*config.Config](g)
	if err != nil {
		return nil, err
	}
	log, err := container.Resolve[*zap.Logger](g)
	if err != nil {
		return nil, err
	}

	router := routing.New(log.Named("http"))

	if cfg.Metrics.Enabled && g.Bound(container.KeyOf[*metrics.Collector]()) {
		collector, err := container.Resolve[*metrics.Collector](g)
		if err != nil {
			return nil, err
		}
		router.Mount(cfg.Metrics.Path, collector.Handler())
	}
	return router, nil
}
