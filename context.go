package ripple

import (
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Context values live in the scope tree, keyed by value type, outside the
// propagation graph: providing a value does not notify anything. Put a
// signal in the context when consumers should react to it.

// contextKey hashes the full package path with the type name, since
// Type.String alone abbreviates packages to their last element and can
// collide across same-named imports. Unnamed types have no path or name and
// fall back to the structural String form.
func contextKey[T any]() uint64 {
	t := reflect.TypeOf((*T)(nil)).Elem()
	d := xxhash.New()
	d.WriteString(t.PkgPath())
	d.WriteString("/")
	d.WriteString(t.Name())
	d.WriteString("/")
	d.WriteString(t.String())
	return d.Sum64()
}

// ProvideContext stores value in the current scope, shadowing any value of
// the same type provided by an ancestor.
func ProvideContext[T any](rt *Runtime, value T) {
	s := rt.currentScope
	if s.values == nil {
		s.values = map[uint64]any{}
	}
	s.values[contextKey[T]()] = value
}

// UseContext looks up a value of type T through the current scope's
// ancestry, nearest scope first. It fails with ErrMissingContext when no
// scope on the path provided one.
func UseContext[T any](rt *Runtime) (T, error) {
	key := contextKey[T]()
	for s := rt.currentScope; s != nil; s = s.parent {
		if v, ok := s.values[key]; ok {
			return v.(T), nil
		}
	}
	var zero T
	return zero, fmt.Errorf("use context %T: %w", zero, ErrMissingContext)
}
