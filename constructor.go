package nasc

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/toutaio/toutago-nasc-typed-factories/registry"
	"github.com/toutaio/toutago-nasc-typed-factories/signature"
)

// ConstructorFunc represents a constructor function.
// Supported signatures:
//   - func() *T
//   - func() (*T, error)
//   - func(Dep1, Dep2, ...) *T
//   - func(Dep1, Dep2, ...) (*T, error)
//   - func(Params) *T where Params embeds signature.In
//   - func(Params) (*T, error)
type ConstructorFunc interface{}

// BindConstructor registers a binding using a constructor function.
// The constructor function's parameters are automatically resolved from the container.
//
// Example:
//
//	container.BindConstructor((*UserService)(nil), NewUserService)
//	// Where: func NewUserService(logger Logger, db Database) (*UserService, error)
func (n *Nasc) BindConstructor(abstractType interface{}, constructor ConstructorFunc) error {
	return n.bindConstructorWithLifetime(abstractType, constructor, LifetimeTransient)
}

// SingletonConstructor registers a singleton binding using a constructor function.
//
// Example:
//
//	container.SingletonConstructor((*Database)(nil), NewDatabase)
func (n *Nasc) SingletonConstructor(abstractType interface{}, constructor ConstructorFunc) error {
	return n.bindConstructorWithLifetime(abstractType, constructor, LifetimeSingleton)
}

func (n *Nasc) bindConstructorWithLifetime(abstractType interface{}, constructor ConstructorFunc, lifetime Lifetime) error {
	if abstractType == nil {
		return &InvalidBindingError{Reason: "abstract type cannot be nil"}
	}

	ctor, err := signature.Parse(constructor)
	if err != nil {
		return &InvalidBindingError{Reason: fmt.Sprintf("invalid constructor: %v", err)}
	}

	return n.register(&registry.Binding{
		AbstractType: typeOf(abstractType),
		ConcreteType: ctor.Produces,
		Lifetime:     string(lifetime),
		Constructors: []interface{}{ctor},
	})
}

// construct builds concrete with the first constructor able to take every
// override. Without explicit constructors a pointer-to-struct type is built
// implicitly from its inject-tagged fields.
func (n *Nasc) construct(concrete reflect.Type, ctors []*signature.Constructor, overrides map[string]interface{}) (interface{}, error) {
	if len(ctors) == 0 {
		implicit, err := signature.ImplicitFor(concrete)
		if err != nil {
			return nil, err
		}
		ctors = []*signature.Constructor{implicit}
	}

	ctor := selectConstructor(ctors, overrides)
	if ctor == nil {
		return nil, &UnknownParameterError{Type: concrete, Names: overrideNames(overrides)}
	}

	args := make([]reflect.Value, len(ctor.Params))
	for i, p := range ctor.Params {
		if value, ok := overrides[p.Name]; ok && p.Name != "" {
			args[i] = argumentValue(p.Type, value)
			continue
		}

		value, err := n.resolveParam(p)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}

	return ctor.Invoke(args)
}

// selectConstructor returns the first constructor, in declaration order,
// whose named parameters accept every override.
func selectConstructor(ctors []*signature.Constructor, overrides map[string]interface{}) *signature.Constructor {
	for _, ctor := range ctors {
		if accepts(ctor, overrides) {
			return ctor
		}
	}
	return nil
}

func accepts(ctor *signature.Constructor, overrides map[string]interface{}) bool {
	for name, value := range overrides {
		p, ok := ctor.Lookup(name)
		if !ok {
			return false
		}
		if value != nil && !reflect.TypeOf(value).AssignableTo(p.Type) {
			return false
		}
	}
	return true
}

func argumentValue(t reflect.Type, value interface{}) reflect.Value {
	if value == nil {
		return reflect.Zero(t)
	}
	v := reflect.New(t).Elem()
	v.Set(reflect.ValueOf(value))
	return v
}

// resolveParam resolves a parameter that no override provides.
func (n *Nasc) resolveParam(p signature.Param) (reflect.Value, error) {
	instance, err := n.resolve(p.Type, p.Binding)
	if err != nil {
		if p.Optional {
			return reflect.Zero(p.Type), nil
		}
		return reflect.Value{}, &ResolutionError{
			Type:    p.Type,
			Name:    p.Binding,
			Context: fmt.Sprintf("parameter %s", paramLabel(p)),
			Cause:   err,
		}
	}
	if instance != nil && !reflect.TypeOf(instance).AssignableTo(p.Type) {
		return reflect.Value{}, &ResolutionError{
			Type:    p.Type,
			Name:    p.Binding,
			Context: fmt.Sprintf("parameter %s: resolved %T is not assignable", paramLabel(p), instance),
		}
	}
	return argumentValue(p.Type, instance), nil
}

func paramLabel(p signature.Param) string {
	if p.Name == "" {
		return fmt.Sprintf("#%d", p.Index())
	}
	return fmt.Sprintf("%q", p.Name)
}

func overrideNames(overrides map[string]interface{}) []string {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
