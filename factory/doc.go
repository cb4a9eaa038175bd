// Package factory registers typed factories: contracts whose methods stand in
// for constructing a concrete type, with the method arguments passed to the
// constructor by name.
//
// A contract is a struct of func fields. The factory tag names the
// parameters of each func, in order:
//
//	type ServiceFactory struct {
//	    Create func(number int) *Service `factory:"number"`
//	}
//
// The concrete type declares named parameters with a parameter object:
//
//	type ServiceParams struct {
//	    signature.In
//
//	    Number int
//	    Logger Logger
//	}
//
//	func NewService(p ServiceParams) *Service
//
// Registration checks that every method returning the concrete type has a
// constructor taking all of its parameters with the same names and types,
// then installs an implementation of the contract in the resolver:
//
//	container := nasc.New()
//	pending, _ := factory.NewBuilder(container).RegisterFactory((*ServiceFactory)(nil))
//	if err := pending.ForConcreteType((*Service)(nil), NewService); err != nil {
//	    return err
//	}
//
//	f := container.Make((*ServiceFactory)(nil)).(*ServiceFactory)
//	svc := f.Create(7) // NewService receives Number 7, Logger from the container
//
// Constructor parameters that no method argument covers are resolved by the
// container. A func returning (R, error) reports resolution failures, a func
// returning R panics with them.
package factory
