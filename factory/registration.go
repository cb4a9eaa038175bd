package factory

import (
	"fmt"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/toutaio/toutago-nasc-typed-factories/signature"
)

// Builder registers typed factories with a resolver.
type Builder struct {
	resolver Resolver
	log      zerolog.Logger
	catalogs []*Catalog
}

// NewBuilder creates a builder registering into resolver.
//
// Example:
//
//	container := nasc.New()
//	builder := factory.NewBuilder(container)
func NewBuilder(resolver Resolver, opts ...Option) *Builder {
	if resolver == nil {
		panic("factory: resolver cannot be nil")
	}

	b := &Builder{
		resolver: resolver,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			panic(fmt.Sprintf("failed to apply option: %v", err))
		}
	}
	return b
}

// PendingRegistration is a captured contract waiting for its concrete type.
// It can complete once.
type PendingRegistration struct {
	builder  *Builder
	contract *Contract
	name     string
	done     bool
}

// RegisterFactory starts the registration of a factory contract.
//
// Example:
//
//	type ServiceFactory struct {
//	    Create func(number int) *Service `factory:"number"`
//	}
//
//	pending, err := builder.RegisterFactory((*ServiceFactory)(nil))
//	err = pending.ForConcreteType((*Service)(nil), NewService)
func (b *Builder) RegisterFactory(contract any) (*PendingRegistration, error) {
	c, err := Capture(contract)
	if err != nil {
		return nil, err
	}
	return &PendingRegistration{builder: b, contract: c}, nil
}

// Register is the generic form of RegisterFactory.
//
//	pending, err := factory.Register[ServiceFactory](builder)
func Register[TContract any](b *Builder) (*PendingRegistration, error) {
	return b.RegisterFactory(reflect.TypeOf((*TContract)(nil)).Elem())
}

// Contract returns the captured contract.
func (p *PendingRegistration) Contract() *Contract {
	return p.contract
}

// Named registers the factory under a name instead of as the default.
func (p *PendingRegistration) Named(name string) *PendingRegistration {
	p.name = name
	return p
}

// ForConcreteType validates the contract against concrete and its
// constructors, then registers both with the resolver. Without constructors
// concrete must be a pointer to struct and is built from its inject-tagged
// fields. Nothing is registered when validation fails.
func (p *PendingRegistration) ForConcreteType(concrete any, ctors ...any) error {
	t, err := concreteTypeOf(concrete)
	if err != nil {
		return err
	}
	return p.complete(t, ctors)
}

// ForConcrete is the generic form of ForConcreteType.
//
//	err := factory.ForConcrete[*Service](pending, NewService)
func ForConcrete[TConcrete any](p *PendingRegistration, ctors ...any) error {
	return p.ForConcreteType(reflect.TypeOf((*TConcrete)(nil)).Elem(), ctors...)
}

// ReturningConcreteType registers the factory for the type its methods
// return. Every method must return the same concrete type, directly or as
// a slice element.
func (p *PendingRegistration) ReturningConcreteType(ctors ...any) error {
	t, err := inferConcrete(p.contract)
	if err != nil {
		return err
	}
	return p.complete(t, ctors)
}

func (p *PendingRegistration) complete(concrete reflect.Type, ctors []any) error {
	if p.done {
		return &InvalidOperationError{
			Reason: fmt.Sprintf("factory %v is already registered", p.contract.Type),
		}
	}

	plan, err := p.builder.plan(p.contract, p.name, concrete, ctors)
	if err != nil {
		return err
	}
	if err := p.builder.commit(plan); err != nil {
		return err
	}

	p.done = true
	return nil
}

// registration is a validated factory ready to be handed to the resolver.
type registration struct {
	contract *Contract
	name     string
	concrete reflect.Type
	ctors    []any
	handler  *Handler
}

func (b *Builder) plan(contract *Contract, name string, concrete reflect.Type, ctors []any) (*registration, error) {
	parsed, err := parseConstructors(concrete, ctors)
	if err != nil {
		return nil, err
	}

	if err := Validate(contract, concrete, parsed); err != nil {
		return nil, err
	}

	if b.resolver.IsRegistered(contract.Key(), name) {
		return nil, &InvalidOperationError{Reason: registeredReason(contract, name)}
	}

	return &registration{
		contract: contract,
		name:     name,
		concrete: concrete,
		ctors:    ctors,
		handler:  NewHandler(b.resolver, contract, concrete, parsed...),
	}, nil
}

func registeredReason(contract *Contract, name string) string {
	if name == "" {
		return fmt.Sprintf("factory %v is already registered", contract.Type)
	}
	return fmt.Sprintf("factory %v named %q is already registered", contract.Type, name)
}

func (b *Builder) commit(r *registration) error {
	if err := b.resolver.RegisterConstructible(r.concrete, r.ctors...); err != nil {
		return err
	}
	if err := b.resolver.RegisterAs(r.contract.Key(), r.handler.Build, r.name); err != nil {
		return err
	}

	b.log.Debug().
		Stringer("contract", r.contract.Type).
		Stringer("concrete", r.concrete).
		Str("name", r.name).
		Int("methods", len(r.contract.Methods)).
		Msg("factory registered")
	return nil
}

func parseConstructors(concrete reflect.Type, ctors []any) ([]*signature.Constructor, error) {
	if len(ctors) == 0 {
		implicit, err := signature.ImplicitFor(concrete)
		if err != nil {
			return nil, &InvalidArgumentError{Argument: "concrete type", Reason: err.Error()}
		}
		return []*signature.Constructor{implicit}, nil
	}

	parsed := make([]*signature.Constructor, len(ctors))
	for i, fn := range ctors {
		ctor, err := signature.Parse(fn)
		if err != nil {
			return nil, &InvalidArgumentError{
				Argument: "constructor",
				Reason:   fmt.Sprintf("constructor %d of %v: %v", i, concrete, err),
			}
		}
		if ctor.Produces != concrete {
			return nil, &InvalidArgumentError{
				Argument: "constructor",
				Reason:   fmt.Sprintf("constructor %d returns %v, want %v", i, ctor.Produces, concrete),
			}
		}
		parsed[i] = ctor
	}
	return parsed, nil
}

// concreteTypeOf reads a concrete type from a token such as (*Service)(nil)
// or a reflect.Type.
func concreteTypeOf(token any) (reflect.Type, error) {
	if token == nil {
		return nil, &InvalidArgumentError{Argument: "concrete type", Reason: "concrete type cannot be nil"}
	}

	t, ok := token.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(token)
	}
	if t == nil || t.Kind() == reflect.Interface {
		return nil, &InvalidArgumentError{
			Argument: "concrete type",
			Reason:   fmt.Sprintf("%v is not a concrete type", t),
		}
	}
	return t, nil
}

func inferConcrete(contract *Contract) (reflect.Type, error) {
	if len(contract.Methods) == 0 {
		return nil, &InvalidOperationError{
			Reason: fmt.Sprintf("factory %v has no methods to infer a concrete type from", contract.Type),
		}
	}

	var inferred reflect.Type
	for _, m := range contract.Methods {
		t := m.Result
		if t.Kind() == reflect.Slice {
			t = t.Elem()
		}
		if inferred != nil && t != inferred {
			return nil, &NotSupportedError{
				Operation: "inferring the concrete type",
				Reason:    fmt.Sprintf("factory %v returns both %v and %v", contract.Type, inferred, t),
			}
		}
		inferred = t
	}

	if inferred.Kind() == reflect.Interface {
		return nil, &InvalidOperationError{
			Reason: fmt.Sprintf("factory %v returns the abstract type %v, use ForConcreteType", contract.Type, inferred),
		}
	}
	return inferred, nil
}
