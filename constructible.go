package nasc

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/toutaio/toutago-nasc-typed-factories/registry"
	"github.com/toutaio/toutago-nasc-typed-factories/signature"
)

// RegisterConstructible registers a concrete type the container may build on
// demand, with its constructors in declaration order. A pointer-to-struct type
// registered without constructors is built from its inject-tagged fields.
//
// Registering the same type again is a no-op apart from appending constructors
// that were not known yet. The merged list only serves resolutions that do not
// pass their own constructors.
//
// Example:
//
//	container.RegisterConstructible(reflect.TypeOf(&Report{}), NewReport, NewEmptyReport)
//	report, err := container.ResolveNewWith(reflect.TypeOf(&Report{}), map[string]interface{}{"title": "Q3"})
func (n *Nasc) RegisterConstructible(concrete reflect.Type, constructors ...interface{}) error {
	if concrete == nil {
		return &InvalidBindingError{Reason: "concrete type cannot be nil"}
	}

	ctors, err := parseConstructors(concrete, constructors)
	if err != nil {
		return err
	}

	if n.registry.Has(concrete, "") {
		return n.registry.Update(concrete, "", func(b *registry.Binding) error {
			if b.ConcreteType != concrete {
				return &InvalidBindingError{
					Reason: fmt.Sprintf("%v is already bound to %v", concrete, b.ConcreteType),
				}
			}
			b.Constructors = mergeConstructors(b.Constructors, ctors)
			return nil
		})
	}

	entries := make([]interface{}, len(ctors))
	for i, c := range ctors {
		entries[i] = c
	}

	return n.register(&registry.Binding{
		AbstractType: concrete,
		ConcreteType: concrete,
		Lifetime:     string(LifetimeTransient),
		Constructors: entries,
	})
}

func parseConstructors(concrete reflect.Type, constructors []interface{}) ([]*signature.Constructor, error) {
	if len(constructors) == 0 {
		implicit, err := signature.ImplicitFor(concrete)
		if err != nil {
			return nil, &InvalidBindingError{Reason: err.Error()}
		}
		return []*signature.Constructor{implicit}, nil
	}

	var errs []error
	ctors := make([]*signature.Constructor, 0, len(constructors))
	for i, fn := range constructors {
		ctor, err := signature.Parse(fn)
		if err != nil {
			errs = append(errs, fmt.Errorf("constructor %d: %w", i, err))
			continue
		}
		if ctor.Produces != concrete {
			errs = append(errs, fmt.Errorf("constructor %d returns %v, want %v", i, ctor.Produces, concrete))
			continue
		}
		ctors = append(ctors, ctor)
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return ctors, nil
}

func mergeConstructors(existing []interface{}, ctors []*signature.Constructor) []interface{} {
	for _, ctor := range ctors {
		known := false
		for _, e := range existing {
			if e.(*signature.Constructor).Same(ctor) {
				known = true
				break
			}
		}
		if !known {
			existing = append(existing, ctor)
		}
	}
	return existing
}

// ResolveNew builds a new instance of a constructible type.
func (n *Nasc) ResolveNew(concrete reflect.Type) (interface{}, error) {
	return n.ResolveNewWith(concrete, nil)
}

// ResolveNewWith builds a new instance of a constructible type, passing the
// overrides to the constructor parameters with matching names. Parameters
// without an override are resolved from the container.
//
// Given ctors, the instance is built with the first of them that accepts the
// overrides, and the constructors registered for the type are not consulted.
func (n *Nasc) ResolveNewWith(concrete reflect.Type, overrides map[string]interface{}, ctors ...*signature.Constructor) (interface{}, error) {
	if concrete == nil {
		return nil, &ResolutionError{Context: "cannot resolve nil type"}
	}

	if len(ctors) > 0 {
		for i, ctor := range ctors {
			if ctor == nil || ctor.Produces != concrete {
				return nil, &ResolutionError{
					Type:    concrete,
					Context: fmt.Sprintf("constructor %d does not produce %v", i, concrete),
				}
			}
		}
	} else {
		binding, err := n.registry.Get(concrete, "")
		switch {
		case err == nil && binding.ConcreteType == concrete:
			ctors = constructorsOf(binding)
		case err == nil:
			return nil, &ResolutionError{
				Type:    concrete,
				Context: fmt.Sprintf("bound to %v, not constructible", binding.ConcreteType),
			}
		default:
			var notFound *registry.BindingNotFoundError
			if !errors.As(err, &notFound) {
				return nil, &ResolutionError{Type: concrete, Cause: err}
			}
		}
	}

	instance, err := n.construct(concrete, ctors, overrides)
	if err != nil {
		return nil, &ResolutionError{Type: concrete, Cause: err}
	}
	return instance, nil
}

// IsRegistered reports whether a binding exists for the type under name.
// Unlike Has it takes the binding key itself rather than a type token.
func (n *Nasc) IsRegistered(t reflect.Type, name string) bool {
	if t == nil {
		return false
	}
	return n.registry.Has(t, name)
}

// RegisterAs registers build as the way to resolve abstractType, optionally
// under a name.
func (n *Nasc) RegisterAs(abstractType reflect.Type, build func() (interface{}, error), name string) error {
	if abstractType == nil {
		return &InvalidBindingError{Reason: "abstract type cannot be nil"}
	}
	if build == nil {
		return &InvalidBindingError{Reason: "factory function cannot be nil"}
	}

	return n.register(&registry.Binding{
		AbstractType: abstractType,
		Lifetime:     string(LifetimeFactory),
		Factory:      FactoryFunc(func(*Nasc) (interface{}, error) { return build() }),
		Name:         name,
	})
}
