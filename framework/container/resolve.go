package container

import (
	"fmt"
	"reflect"
)

// ── Generics helpers ──────────────────────────────────────────────────────────

// Bind registers a transient Supplier under KeyOf[T].
//
//	container.Bind(b, container.Supplier[Greeter, struct{}](
//	    func(*container.Graph, struct{}) (Greeter, error) { return &HelloGreeter{}, nil }))
func Bind[T, B any](r Registrar, s Supplier[T, B]) {
	r.Register(KeyOf[T](), s, false)
}

// BindSingleton registers a singleton Supplier under KeyOf[T].
func BindSingleton[T, B any](r Registrar, s Supplier[T, B]) {
	r.Register(KeyOf[T](), s, true)
}

// Resolve is Get(KeyOf[T]()) with the result typed.
//
//	// Instead of: v, err := g.Get(container.KeyOf[Greeter]()); greeter := v.(Greeter)
//	// Write:      greeter, err := container.Resolve[Greeter](g)
func Resolve[T any](g *Graph) (T, error) {
	return ResolveWith[T](g, nil)
}

// ResolveWith is GetWith(KeyOf[T](), arg) with the result typed.
func ResolveWith[T any](g *Graph, arg any) (T, error) {
	key := KeyOf[T]()
	v, err := g.GetWith(key, arg)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](g, key, v)
}

// ResolveScoped is GetScoped(KeyOf[T](), scopeID) with the result typed.
func ResolveScoped[T any](g *Graph, scopeID any) (T, error) {
	return ResolveScopedWith[T](g, nil, scopeID)
}

// ResolveScopedWith is GetScopedWith(KeyOf[T](), arg, scopeID) with the
// result typed.
func ResolveScopedWith[T any](g *Graph, arg any, scopeID any) (T, error) {
	key := KeyOf[T]()
	v, err := g.GetScopedWith(key, arg, scopeID)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](g, key, v)
}

// Release is RemoveScoped(KeyOf[T](), scopeID).
func Release[T any](g *Graph, scopeID any) error {
	return g.RemoveScoped(KeyOf[T](), scopeID)
}

// MustResolve is like Resolve but panics on error. Meant for bootstrap code
// where a missing binding is a programming error.
func MustResolve[T any](g *Graph) T {
	v, err := Resolve[T](g)
	if err != nil {
		panic(fmt.Sprintf("container: MustResolve[%s]: %v", KeyOf[T](), err))
	}
	return v
}

// cast is the single place where an untyped instance is converted back to
// the type it was registered under. A nil instance converts to T's zero
// value when T is an interface, pointer, map, slice, chan or func.
func cast[T any](g *Graph, key Key, v any) (T, error) {
	if typed, ok := v.(T); ok {
		return typed, nil
	}
	var zero T
	if v == nil && nillable(reflect.TypeOf((*T)(nil)).Elem()) {
		return zero, nil
	}
	return zero, g.fail(key, &TypeMismatchError{
		Key:  key,
		Want: reflect.TypeOf((*T)(nil)).Elem(),
		Got:  reflect.TypeOf(v),
	})
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}
