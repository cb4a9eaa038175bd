package factory

import (
	"fmt"
	"reflect"
	"strings"
)

// InvalidArgumentError is returned when a contract, concrete type or
// constructor handed to the builder is unusable.
type InvalidArgumentError struct {
	Argument string
	Reason   string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Argument, e.Reason)
}

// CannotConstructError is returned when no method of a contract returns the
// concrete type or a slice of it.
type CannotConstructError struct {
	Contract reflect.Type
	Concrete reflect.Type
}

func (e *CannotConstructError) Error() string {
	return fmt.Sprintf("factory %v has no method returning %v", e.Contract, e.Concrete)
}

// SignatureMismatchError is returned when some candidate methods of a contract
// cannot be satisfied by any constructor of the concrete type.
type SignatureMismatchError struct {
	Contract reflect.Type
	Concrete reflect.Type
	Methods  []*Method
}

func (e *SignatureMismatchError) Error() string {
	methods := make([]string, len(e.Methods))
	for i, m := range e.Methods {
		methods[i] = m.String()
	}
	return fmt.Sprintf("factory %v cannot construct %v: no constructor accepts %s",
		e.Contract, e.Concrete, strings.Join(methods, ", "))
}

// IncompatibleReturnTypeError is raised when a factory method is invoked whose
// result cannot hold the concrete type. Registration rules this out, so it
// signals a programming error.
type IncompatibleReturnTypeError struct {
	Concrete reflect.Type
	Method   *Method
}

func (e *IncompatibleReturnTypeError) Error() string {
	return fmt.Sprintf("cannot return %v from %s: result type %v is not assignable from it",
		e.Concrete, e.Method, e.Method.Result)
}

// MissingMarkerError is returned by convention registration when candidates do
// not declare the factory that constructs them. Nothing is registered.
type MissingMarkerError struct {
	Types []reflect.Type
}

func (e *MissingMarkerError) Error() string {
	names := make([]string, len(e.Types))
	for i, t := range e.Types {
		names[i] = t.String()
	}
	return fmt.Sprintf("no factory marker declared for %s", strings.Join(names, ", "))
}

// NotSupportedError is returned for requests the builder does not implement.
type NotSupportedError struct {
	Operation string
	Reason    string
}

func (e *NotSupportedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is not supported", e.Operation)
	}
	return fmt.Sprintf("%s is not supported: %s", e.Operation, e.Reason)
}

// InvalidOperationError is returned when a call is not valid in the current
// state of a registration.
type InvalidOperationError struct {
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid operation: %s", e.Reason)
}
