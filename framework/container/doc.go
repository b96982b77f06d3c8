// Package container provides a small dependency-resolution graph.
//
// # Overview
//
// A Graph maps a service Key (a Go type) to a Factory and applies one of
// three lifetimes when the service is resolved:
//
//   - Transient: the factory runs on every Get.
//   - Singleton: the first result is cached and returned forever after.
//   - Scoped: one instance per scope id (a request id, a session id...).
//
// There is no reflective constructor injection: factories receive the Graph
// and resolve their own dependencies. Cycles are not detected.
//
// # Graph Lifecycle
//
//  1. Create: b := container.NewBuilder(container.WithLogger(log))
//  2. Register: b.Add(...), b.AddSingleton(...), or providers
//  3. Build: g := b.Build()
//  4. Resolve: g.Get(...), g.GetScoped(...), container.Resolve[T](g)
//
// # Bindings
//
//	// Transient: new instance every Get()
//	b.Add(container.KeyOf[Greeter](), container.FactoryFunc(
//	    func(*container.Graph, any) (any, error) { return &HelloGreeter{}, nil }))
//
//	// Singleton: created once, reused; later build arguments are ignored
//	container.BindSingleton(b, container.Supplier[*Clock, struct{}](newClock))
//
//	// Pre-built value
//	b.AddSingleton(container.KeyOf[*config.Config](), container.Value(cfg))
//
// # Build arguments
//
// A factory may take one argument per resolution:
//
//	container.Bind(b, container.Supplier[Greeter, string](
//	    func(_ *container.Graph, msg string) (Greeter, error) { return &EchoGreeter{Msg: msg}, nil }))
//
//	greeter, _ := container.ResolveWith[Greeter](g, "boo") // greeter.Speak() == "boo"
//
// # Scopes
//
// Any registration can be resolved per scope. The first scoped call turns the
// registration into a scoped one permanently; plain Get keeps working and
// never reads the scope caches.
//
//	s1, _ := container.ResolveScoped[*Cart](g, "session-1")
//	s2, _ := container.ResolveScoped[*Cart](g, "session-2") // s1 != s2
//	_ = container.Release[*Cart](g, "session-1")           // next call builds a new cart
//
// Scope ids must be comparable (strings, ints, comparable structs).
//
// # Errors
//
// Resolving an unregistered key returns a *NotFoundError (errors.Is
// ErrNotFound). Errors from factories are returned unchanged.
//
// # Concurrency
//
// A Graph is safe for concurrent use. A singleton holds its lock while the
// factory runs; a scoped key locks each scope separately, so a slow factory
// only delays callers of the same scope. Each slot produces at most one
// instance. A factory that resolves its own singleton, or its own key in the
// same scope, deadlocks.
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(r container.Registrar) {
//	    container.BindSingleton(r, container.Supplier[*Mailer, struct{}](newMailer))
//	}
//
//	registry := container.NewProviderRegistry(container.NewBuilder())
//	_ = registry.Register(&AppServiceProvider{})
//	g, err := registry.Boot()
package container
