package container

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinels for errors.Is. The concrete errors below carry the details.
var (
	ErrNotFound     = errors.New("container: service not registered")
	ErrTypeMismatch = errors.New("container: service type mismatch")
	ErrBadArgument  = errors.New("container: build argument type mismatch")
	ErrInvalidScope = errors.New("container: scope id is not comparable")
)

// NotFoundError is returned when a key has no registration.
type NotFoundError struct {
	Key Key
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("container: no binding registered for [%s]", e.Key)
}

// Is matches ErrNotFound, and any *NotFoundError with the same key (or with
// a zero key, which acts as a wildcard).
func (e *NotFoundError) Is(target error) bool {
	if target == ErrNotFound {
		return true
	}
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return t.Key.IsZero() || t.Key == e.Key
}

// TypeMismatchError is returned by the typed helpers when the registered
// factory produced something other than the requested type.
type TypeMismatchError struct {
	Key  Key
	Want reflect.Type
	Got  reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("container: [%s] resolved to %v, want %v", e.Key, e.Got, e.Want)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// ArgumentError is returned by a Supplier given a build argument of the
// wrong type.
type ArgumentError struct {
	Key  Key
	Want reflect.Type
	Got  reflect.Type
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("container: [%s] build argument is %v, want %v", e.Key, e.Got, e.Want)
}

func (e *ArgumentError) Is(target error) bool { return target == ErrBadArgument }

// ScopeError is returned when a scope id cannot be used as a map key.
type ScopeError struct {
	Key     Key
	ScopeID any
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("container: [%s] scope id of type %T is not comparable", e.Key, e.ScopeID)
}

func (e *ScopeError) Is(target error) bool { return target == ErrInvalidScope }

// ErrorKind classifies a resolution error for metrics and logs: one of
// "not_found", "type_mismatch", "bad_argument", "invalid_scope" or
// "factory" for anything a factory returned.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, ErrBadArgument):
		return "bad_argument"
	case errors.Is(err, ErrInvalidScope):
		return "invalid_scope"
	default:
		return "factory"
	}
}
