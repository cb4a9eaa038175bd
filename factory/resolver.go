package factory

import (
	"reflect"

	"github.com/toutaio/toutago-nasc-typed-factories/signature"
)

// Resolver is the container that builds concrete types and hands out factory
// implementations. *nasc.Nasc implements it.
type Resolver interface {
	// ResolveNewWith builds a new instance, passing overrides to the
	// constructor parameters with the same names. Given ctors, only those
	// constructors may be used, in order.
	ResolveNewWith(concrete reflect.Type, overrides map[string]any, ctors ...*signature.Constructor) (any, error)

	// RegisterConstructible makes concrete buildable with the given
	// constructors. Registering a type twice must not fail.
	RegisterConstructible(concrete reflect.Type, ctors ...any) error

	// RegisterAs makes build the way to resolve contract, optionally under a name.
	RegisterAs(contract reflect.Type, build func() (any, error), name string) error

	// IsRegistered reports whether t already has a binding under name.
	IsRegistered(t reflect.Type, name string) bool
}
