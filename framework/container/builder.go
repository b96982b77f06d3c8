package container

// Builder collects registrations and produces Graphs.
//
//	g := container.NewBuilder(container.WithLogger(log)).
//	    Add(container.KeyOf[Greeter](), helloFactory).
//	    AddSingleton(container.KeyOf[*Clock](), clockFactory).
//	    Build()
type Builder struct {
	opts          options
	registrations []registration
}

type registration struct {
	key       Key
	factory   Factory
	singleton bool
}

// NewBuilder creates an empty builder. The options are applied to every
// graph it builds.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{opts: buildOptions(opts)}
}

// Register records f under key. Later registrations for the same key win.
func (b *Builder) Register(key Key, f Factory, singleton bool) {
	b.registrations = append(b.registrations, registration{key: key, factory: f, singleton: singleton})
}

// Add records a transient registration.
func (b *Builder) Add(key Key, f Factory) *Builder {
	b.Register(key, f, false)
	return b
}

// AddSingleton records a singleton registration.
func (b *Builder) AddSingleton(key Key, f Factory) *Builder {
	b.Register(key, f, true)
	return b
}

// Build returns a new Graph holding the recorded registrations. Each call
// creates fresh caches: two graphs built from one builder never share a
// singleton or a scoped instance.
func (b *Builder) Build() *Graph {
	g := newGraph(b.opts)
	for _, r := range b.registrations {
		g.reg.register(r.key, r.factory, r.singleton)
	}
	return g
}

// Registrar is implemented by *Builder and *Graph, so registration helpers
// and service providers work before and after Build.
type Registrar interface {
	Register(key Key, f Factory, singleton bool)
}

var (
	_ Registrar = (*Builder)(nil)
	_ Registrar = (*Graph)(nil)
)
