package container

import "reflect"

// Key identifies an abstract service by its Go type.
//
// Two keys are equal iff they denote the same type, so Key can be used
// directly as a map key. The zero Key matches no registration.
type Key struct {
	typ reflect.Type
}

// KeyOf returns the key for T. Interfaces work as expected:
//
//	container.KeyOf[Greeter]()
//	container.KeyOf[*config.Config]()
func KeyOf[T any]() Key {
	return Key{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// KeyFor derives a key from a value. A nil pointer to an interface yields
// the interface's key, which is handy when T is not nameable at the call site:
//
//	key := container.KeyFor((*Greeter)(nil)) // same as KeyOf[Greeter]()
func KeyFor(v any) Key {
	t := reflect.TypeOf(v)
	if t == nil {
		return Key{}
	}
	if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Interface {
		t = t.Elem()
	}
	return Key{typ: t}
}

// Type returns the service type, or nil for the zero Key.
func (k Key) Type() reflect.Type { return k.typ }

// IsZero reports whether k is the zero Key.
func (k Key) IsZero() bool { return k.typ == nil }

// String returns the package-qualified type name, e.g. "main.Greeter" or
// "*config.Config".
func (k Key) String() string {
	if k.typ == nil {
		return "<nil>"
	}
	return typeName(k.typ)
}

func typeName(t reflect.Type) string {
	if t.Name() == "" {
		// composite types (pointers, slices, maps) already print qualified
		return t.String()
	}
	if pkg := t.PkgPath(); pkg != "" {
		return pkg + "." + t.Name()
	}
	return t.Name()
}
