package nasc

import (
	"fmt"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/toutaio/toutago-nasc-typed-factories/registry"
	"github.com/toutaio/toutago-nasc-typed-factories/signature"
)

// Nasc is the main dependency injection container.
// It manages bindings and resolves dependencies in a thread-safe manner.
type Nasc struct {
	registry       *registry.Registry
	singletonCache *singletonCache
	log            zerolog.Logger
}

// New creates a new Nasc container instance.
// Options can be provided to configure the container behavior.
//
// Example:
//
//	container := nasc.New()
//	// or with options:
//	container := nasc.New(nasc.WithDebug())
func New(options ...Option) *Nasc {
	n := &Nasc{
		registry:       registry.New(),
		singletonCache: newSingletonCache(),
		log:            zerolog.Nop(),
	}

	for _, opt := range options {
		if err := opt(n); err != nil {
			panic(fmt.Sprintf("failed to apply option: %v", err))
		}
	}

	return n
}

// typeOf extracts the binding key from a type token.
// Pointers to interfaces like (*Logger)(nil) yield the interface type, every
// other token keeps its own type, so (*Config)(nil) and &Config{} both key *Config.
func typeOf(token interface{}) reflect.Type {
	t := reflect.TypeOf(token)
	if t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Interface {
		return t.Elem()
	}
	return t
}

// concreteOf validates the concrete side of a binding.
func concreteOf(concreteType interface{}) (reflect.Type, error) {
	if concreteType == nil {
		return nil, &InvalidBindingError{Reason: "concrete type cannot be nil"}
	}

	concreteT := reflect.TypeOf(concreteType)
	if concreteT.Kind() != reflect.Ptr || concreteT.Elem().Kind() != reflect.Struct {
		return nil, &InvalidBindingError{
			Reason: fmt.Sprintf("concrete type must be pointer to struct, got %v", concreteT),
		}
	}
	return concreteT, nil
}

// register stores a binding after checking that the concrete type satisfies
// the abstract one.
func (n *Nasc) register(binding *registry.Binding) error {
	if binding.ConcreteType != nil && !binding.ConcreteType.AssignableTo(binding.AbstractType) {
		return &InvalidBindingError{
			Reason: fmt.Sprintf("%v is not assignable to %v", binding.ConcreteType, binding.AbstractType),
		}
	}

	if err := n.registry.Register(binding); err != nil {
		return err
	}

	n.log.Debug().
		Stringer("abstract", binding.AbstractType).
		Str("name", binding.Name).
		Str("lifetime", binding.Lifetime).
		Msg("binding registered")
	return nil
}

// Bind registers a binding between an interface type and a concrete implementation.
// The abstractType should be an interface pointer like (*Logger)(nil).
// The concreteType should be a pointer to the concrete implementation; fields
// tagged with `inject` are resolved when an instance is created.
//
// Example:
//
//	container.Bind((*Logger)(nil), &ConsoleLogger{})
//
// Returns an error if:
//   - Either parameter is nil
//   - The binding already exists
//   - The types are invalid
func (n *Nasc) Bind(abstractType, concreteType interface{}) error {
	return n.bind(abstractType, concreteType, "", LifetimeTransient)
}

// BindNamed registers a named binding.
// Named bindings allow multiple implementations of the same interface.
//
// Example:
//
//	container.BindNamed((*Logger)(nil), &FileLogger{}, "file")
//	container.BindNamed((*Logger)(nil), &ConsoleLogger{}, "console")
//
//	fileLogger := container.MakeNamed((*Logger)(nil), "file").(Logger)
func (n *Nasc) BindNamed(abstractType, concreteType interface{}, name string) error {
	if name == "" {
		return &InvalidBindingError{Reason: "name cannot be empty"}
	}
	return n.bind(abstractType, concreteType, name, LifetimeTransient)
}

// Singleton registers a singleton binding.
// The instance is created lazily on first resolution and reused for all subsequent resolutions.
//
// Example:
//
//	container.Singleton((*Database)(nil), &PostgresDB{})
//	db1 := container.Make((*Database)(nil)).(Database)
//	db2 := container.Make((*Database)(nil)).(Database)
//	// db1 == db2 (same instance)
func (n *Nasc) Singleton(abstractType, concreteType interface{}) error {
	return n.bind(abstractType, concreteType, "", LifetimeSingleton)
}

func (n *Nasc) bind(abstractType, concreteType interface{}, name string, lifetime Lifetime) error {
	if abstractType == nil {
		return &InvalidBindingError{Reason: "abstract type cannot be nil"}
	}

	concreteT, err := concreteOf(concreteType)
	if err != nil {
		return err
	}

	return n.register(&registry.Binding{
		AbstractType: typeOf(abstractType),
		ConcreteType: concreteT,
		Lifetime:     string(lifetime),
		Name:         name,
	})
}

// Instance registers an already built value. Every resolution returns it.
//
// Example:
//
//	container.Instance((*Config)(nil), cfg)
func (n *Nasc) Instance(abstractType, instance interface{}) error {
	if abstractType == nil {
		return &InvalidBindingError{Reason: "abstract type cannot be nil"}
	}
	if instance == nil {
		return &InvalidBindingError{Reason: "instance cannot be nil"}
	}

	return n.register(&registry.Binding{
		AbstractType: typeOf(abstractType),
		ConcreteType: reflect.TypeOf(instance),
		Lifetime:     string(LifetimeFactory),
		Factory:      FactoryFunc(func(*Nasc) (interface{}, error) { return instance, nil }),
	})
}

// Factory registers a factory binding.
// The factory function is called on every resolution to create instances.
//
// Example:
//
//	container.Factory((*Connection)(nil), func(c *Nasc) (interface{}, error) {
//	    config := c.Make((*Config)(nil)).(*Config)
//	    return NewConnection(config.DSN), nil
//	})
func (n *Nasc) Factory(abstractType interface{}, factory FactoryFunc) error {
	return n.FactoryNamed(abstractType, factory, "")
}

// FactoryNamed registers a factory binding under a name. An empty name
// registers the default binding.
func (n *Nasc) FactoryNamed(abstractType interface{}, factory FactoryFunc, name string) error {
	if abstractType == nil {
		return &InvalidBindingError{Reason: "abstract type cannot be nil"}
	}
	if factory == nil {
		return &InvalidBindingError{Reason: "factory function cannot be nil"}
	}

	return n.register(&registry.Binding{
		AbstractType: typeOf(abstractType),
		Lifetime:     string(LifetimeFactory),
		Factory:      factory,
		Name:         name,
	})
}

// Make resolves and returns an instance of the registered type.
// The abstractType should be an interface pointer like (*Logger)(nil).
//
// The resolution behavior depends on the binding's lifetime:
//   - Transient: Creates a new instance every time
//   - Singleton: Returns the same instance (created lazily on first call)
//   - Factory: Calls the factory function to create an instance
//
// Make panics if the type cannot be resolved; use MakeSafe to get an error instead.
//
// Example:
//
//	logger := container.Make((*Logger)(nil)).(Logger)
func (n *Nasc) Make(abstractType interface{}) interface{} {
	instance, err := n.MakeSafe(abstractType)
	if err != nil {
		panic(err.Error())
	}
	return instance
}

// MakeNamed resolves and returns a named instance. It panics on failure.
//
// Example:
//
//	logger := container.MakeNamed((*Logger)(nil), "file").(Logger)
func (n *Nasc) MakeNamed(abstractType interface{}, name string) interface{} {
	instance, err := n.MakeNamedSafe(abstractType, name)
	if err != nil {
		panic(err.Error())
	}
	return instance
}

// MakeSafe resolves an instance and returns an error instead of panicking.
//
// Example:
//
//	service, err := container.MakeSafe((*Service)(nil))
//	if err != nil {
//	    log.Fatal(err)
//	}
func (n *Nasc) MakeSafe(abstractType interface{}) (interface{}, error) {
	if abstractType == nil {
		return nil, &ResolutionError{Context: "cannot resolve nil type"}
	}
	return n.resolve(typeOf(abstractType), "")
}

// MakeNamedSafe resolves a named instance and returns an error instead of panicking.
func (n *Nasc) MakeNamedSafe(abstractType interface{}, name string) (interface{}, error) {
	if abstractType == nil {
		return nil, &ResolutionError{Context: "cannot resolve nil type"}
	}
	if name == "" {
		return nil, &ResolutionError{Type: typeOf(abstractType), Context: "name cannot be empty"}
	}
	return n.resolve(typeOf(abstractType), name)
}

// Has reports whether a binding exists for the type token and name.
func (n *Nasc) Has(abstractType interface{}, name string) bool {
	if abstractType == nil {
		return false
	}
	return n.registry.Has(typeOf(abstractType), name)
}

// Resolve is the generic form of MakeSafe.
//
//	logger, err := nasc.Resolve[Logger](container)
func Resolve[T any](n *Nasc) (T, error) {
	return ResolveNamed[T](n, "")
}

// ResolveNamed is the generic form of MakeNamedSafe. An empty name resolves
// the default binding.
func ResolveNamed[T any](n *Nasc, name string) (T, error) {
	var zero T

	t := reflect.TypeOf((*T)(nil)).Elem()
	instance, err := n.resolve(t, name)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, &ResolutionError{Type: t, Name: name, Context: fmt.Sprintf("resolved %T", instance)}
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on failure.
func MustResolve[T any](n *Nasc) T {
	instance, err := Resolve[T](n)
	if err != nil {
		panic(err.Error())
	}
	return instance
}

// resolve looks up the binding for (t, name) and creates an instance from it.
func (n *Nasc) resolve(t reflect.Type, name string) (interface{}, error) {
	binding, err := n.registry.Get(t, name)
	if err != nil {
		return nil, &ResolutionError{Type: t, Name: name, Cause: err}
	}

	instance, err := n.createInstanceFromBinding(binding)
	if err != nil {
		return nil, &ResolutionError{Type: t, Name: name, Cause: err}
	}
	return instance, nil
}

// createInstanceFromBinding creates an instance from a binding.
// This centralizes instance creation logic for reuse.
func (n *Nasc) createInstanceFromBinding(binding *registry.Binding) (interface{}, error) {
	switch Lifetime(binding.Lifetime) {
	case LifetimeTransient:
		return n.build(binding, nil)

	case LifetimeSingleton:
		key := registry.Key{Type: binding.AbstractType, Name: binding.Name}
		return n.singletonCache.getOrCreate(key, func() (interface{}, error) {
			return n.build(binding, nil)
		})

	case LifetimeFactory:
		factory, ok := binding.Factory.(FactoryFunc)
		if !ok {
			return nil, fmt.Errorf("invalid factory function for type %v", binding.AbstractType)
		}
		instance, err := factory(n)
		if err != nil {
			return nil, fmt.Errorf("factory function failed: %w", err)
		}
		return instance, nil

	default:
		return nil, fmt.Errorf("unknown lifetime %s", binding.Lifetime)
	}
}

// build constructs the binding's concrete type with its own constructors, or
// with the constructors registered for the concrete type.
func (n *Nasc) build(binding *registry.Binding, overrides map[string]interface{}) (interface{}, error) {
	ctors := constructorsOf(binding)
	if len(ctors) == 0 && binding.AbstractType != binding.ConcreteType {
		if target, err := n.registry.Get(binding.ConcreteType, ""); err == nil {
			ctors = constructorsOf(target)
		}
	}
	return n.construct(binding.ConcreteType, ctors, overrides)
}

func constructorsOf(binding *registry.Binding) []*signature.Constructor {
	ctors := make([]*signature.Constructor, 0, len(binding.Constructors))
	for _, c := range binding.Constructors {
		ctors = append(ctors, c.(*signature.Constructor))
	}
	return ctors
}

// MakeAll resolves every binding of the type, default and named, in
// registration order. It panics if any of them fails.
func (n *Nasc) MakeAll(abstractType interface{}) []interface{} {
	instances, err := n.MakeAllSafe(abstractType)
	if err != nil {
		panic(err.Error())
	}
	return instances
}

// MakeAllSafe is like MakeAll but returns an error instead of panicking.
func (n *Nasc) MakeAllSafe(abstractType interface{}) ([]interface{}, error) {
	if abstractType == nil {
		return nil, &ResolutionError{Context: "cannot resolve nil type"}
	}

	t := typeOf(abstractType)
	bindings := n.registry.All(t)
	instances := make([]interface{}, 0, len(bindings))
	for _, binding := range bindings {
		instance, err := n.createInstanceFromBinding(binding)
		if err != nil {
			return nil, &ResolutionError{Type: t, Name: binding.Name, Cause: err}
		}
		instances = append(instances, instance)
	}
	return instances, nil
}
