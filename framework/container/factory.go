package container

import "reflect"

// ── Factories ─────────────────────────────────────────────────────────────────

// Factory produces one service instance.
//
// The graph is passed to every call so a factory can resolve its own
// dependencies; arg is the build argument given to GetWith / GetScopedWith,
// or nil. Errors are returned to the caller of Get unchanged.
type Factory interface {
	Produce(g *Graph, arg any) (any, error)
}

// FactoryFunc adapts an ordinary function to Factory.
//
//	b.Add(key, container.FactoryFunc(func(g *container.Graph, _ any) (any, error) {
//	    return &HelloGreeter{}, nil
//	}))
type FactoryFunc func(g *Graph, arg any) (any, error)

// Produce calls f(g, arg).
func (f FactoryFunc) Produce(g *Graph, arg any) (any, error) { return f(g, arg) }

// Supplier is a typed factory: it produces a T from a build argument of
// type B. Use struct{} (or any) for B when the service takes no argument.
//
//	container.Bind(b, container.Supplier[Greeter, string](
//	    func(g *container.Graph, msg string) (Greeter, error) {
//	        return &EchoGreeter{Msg: msg}, nil
//	    }))
type Supplier[T, B any] func(g *Graph, arg B) (T, error)

// Produce converts arg to B and calls s. A nil arg becomes B's zero value;
// any other value that is not a B is rejected with an *ArgumentError.
func (s Supplier[T, B]) Produce(g *Graph, arg any) (any, error) {
	var typed B
	if arg != nil {
		v, ok := arg.(B)
		if !ok {
			return nil, &ArgumentError{
				Key:  KeyOf[T](),
				Want: reflect.TypeOf((*B)(nil)).Elem(),
				Got:  reflect.TypeOf(arg),
			}
		}
		typed = v
	}
	return s(g, typed)
}

// Value returns a factory that always yields v, for binding pre-built
// instances such as a loaded *config.Config.
func Value(v any) Factory {
	return FactoryFunc(func(*Graph, any) (any, error) { return v, nil })
}
