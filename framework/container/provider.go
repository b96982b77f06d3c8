package container

import "fmt"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups the registrations of one subsystem.
//
// Register is called before the graph exists and must only record factories.
// Boot is called once the graph is built, after every provider has
// registered, so it may resolve anything.
//
//	type GreeterProvider struct{ container.BaseProvider }
//
//	func (p *GreeterProvider) Register(r container.Registrar) {
//	    container.Bind(r, container.Supplier[Greeter, struct{}](newHelloGreeter))
//	}
//
//	func (p *GreeterProvider) Boot(g *container.Graph) error {
//	    _, err := container.Resolve[Greeter](g) // fail fast
//	    return err
//	}
type ServiceProvider interface {
	// Register records bindings. Do NOT resolve here; use Boot for that.
	Register(r Registrar)

	// Boot runs after all providers are registered and the graph is built.
	Boot(g *Graph) error
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with a no-op Boot.
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(r container.Registrar) { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Graph) error { return nil }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers providers against a Builder and boots them
// against the Graph it builds.
type ProviderRegistry struct {
	builder    *Builder
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	graph      *Graph
	booted     bool
	bootErr    error
}

// NewProviderRegistry creates a registry recording into b.
func NewProviderRegistry(b *Builder) *ProviderRegistry {
	return &ProviderRegistry{
		builder:    b,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register method. The same provider
// value is only registered once. After Boot the provider registers against
// the live graph and is booted immediately; after a failed Boot it is
// rejected with the boot error.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	r.registered[provider] = true
	r.providers = append(r.providers, provider)

	if !r.booted {
		provider.Register(r.builder)
		return nil
	}

	if r.bootErr != nil {
		return r.bootErr
	}

	provider.Register(r.graph)
	if err := provider.Boot(r.graph); err != nil {
		return fmt.Errorf("container: boot %T: %w", provider, err)
	}
	return nil
}

// Boot builds the graph and calls Boot on every provider in registration
// order. It stops at the first error, and every later call returns that
// error again: providers after the failing one never ran, so the graph is
// not usable. Calling Boot again after success returns the same graph
// without booting anything twice.
func (r *ProviderRegistry) Boot() (*Graph, error) {
	if r.booted {
		return r.graph, r.bootErr
	}
	r.graph = r.builder.Build()
	r.booted = true

	for _, provider := range r.providers {
		if err := provider.Boot(r.graph); err != nil {
			r.bootErr = fmt.Errorf("container: boot %T: %w", provider, err)
			return r.graph, r.bootErr
		}
	}
	return r.graph, nil
}

// Booted returns true once Boot has been called, whether or not it failed.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Graph returns the booted graph, or nil before Boot.
func (r *ProviderRegistry) Graph() *Graph { return r.graph }

// Providers returns all registered providers in registration order.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
