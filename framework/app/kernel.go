// Package app wires configuration, logging, metrics and routing into one
// dependency graph and serves it over HTTP.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-graph/framework/config"
	"github.com/km-arc/go-graph/framework/container"
	"github.com/km-arc/go-graph/framework/logging"
	"github.com/km-arc/go-graph/framework/metrics"
	"github.com/km-arc/go-graph/framework/providers"
	"github.com/km-arc/go-graph/routing"
)

const shutdownTimeout = 10 * time.Second

// Application owns the provider registry and the graph it boots.
//
// Configuration, the logger and the metrics collector exist before the
// graph because the graph reports to them; they are bound as singletons so
// services can depend on them like on anything else.
type Application struct {
	Providers *container.ProviderRegistry

	cfg *config.Config
	log *zap.Logger
}

// New loads configuration from envFiles (".env" when none are given),
// builds the logger and registers the framework providers.
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	log = log.With(zap.String("app", cfg.App.Name))

	opts := []container.Option{container.WithLogger(log.Named("container"))}

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.Namespace)
		opts = append(opts, container.WithObserver(collector))
	}

	a := &Application{
		Providers: container.NewProviderRegistry(container.NewBuilder(opts...)),
		cfg:       cfg,
		log:       log,
	}

	core := []container.ServiceProvider{
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.LoggingServiceProvider{Logger: log},
	}
	if collector != nil {
		core = append(core, &providers.MetricsServiceProvider{Collector: collector})
	}
	core = append(core, &providers.RoutingServiceProvider{})

	for _, p := range core {
		if err := a.Register(p); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot builds the graph and boots every provider. It is safe to call more
// than once.
func (a *Application) Boot() (*container.Graph, error) {
	booted := a.Providers.Booted()
	g, err := a.Providers.Boot()
	if err != nil {
		return nil, err
	}
	if !booted {
		a.log.Info("application booted",
			zap.Int("providers", len(a.Providers.Providers())),
			zap.Int("bindings", len(g.Bindings())),
		)
	}
	return g, nil
}

// Graph boots the application if needed and returns its graph.
func (a *Application) Graph() (*container.Graph, error) {
	return a.Boot()
}

// Config returns the loaded configuration.
func (a *Application) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *Application) Logger() *zap.Logger { return a.log }

// Router boots the application if needed and resolves the router.
func (a *Application) Router() (*routing.Router, error) {
	g, err := a.Boot()
	if err != nil {
		return nil, err
	}
	return container.Resolve[*routing.Router](g)
}

// Run boots the application and serves HTTP on App.Port until ctx is done,
// then shuts the server down gracefully.
func (a *Application) Run(ctx context.Context) error {
	router, err := a.Router()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("app: serve: %w", err)
		}
	}()

	a.log.Info("listening",
		zap.String("addr", srv.Addr),
		zap.String("env", a.cfg.App.Env),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	_ = a.log.Sync()
	return <-errCh
}
