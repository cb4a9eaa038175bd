package factory

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/toutaio/toutago-nasc-typed-factories/signature"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// ReturnKind tells how a factory method produces the concrete type.
type ReturnKind int

const (
	// Incompatible methods cannot hold the concrete type.
	Incompatible ReturnKind = iota
	// Single methods return one instance.
	Single
	// Sequence methods return a slice of instances.
	Sequence
)

func (k ReturnKind) String() string {
	switch k {
	case Single:
		return "single"
	case Sequence:
		return "sequence"
	default:
		return "incompatible"
	}
}

// KindOf classifies a method result type against a concrete type.
func KindOf(result, concrete reflect.Type) ReturnKind {
	switch {
	case concrete.AssignableTo(result):
		return Single
	case result.Kind() == reflect.Slice && concrete.AssignableTo(result.Elem()):
		return Sequence
	default:
		return Incompatible
	}
}

// Method is one func field of a factory contract.
type Method struct {
	Name string

	// Params carry the names declared by the field's factory tag.
	Params []signature.Param

	Result       reflect.Type
	ReturnsError bool

	pos   int
	field int
	fn    reflect.Type
}

func (m *Method) String() string {
	params := make([]string, len(m.Params))
	for i, p := range m.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s(%s)", m.Name, strings.Join(params, ", "))
}

// Contract is a captured factory contract: a struct whose exported fields
// are all funcs, one per factory method.
//
//	type ServiceFactory struct {
//	    Create     func(number int) *Service       `factory:"number"`
//	    CreateSafe func(number int) (*Service, error) `factory:"number"`
//	}
type Contract struct {
	Type    reflect.Type
	Methods []*Method
}

// Key is the type the contract is registered and resolved under.
func (c *Contract) Key() reflect.Type {
	return reflect.PtrTo(c.Type)
}

// Method returns the method with the given name.
func (c *Contract) Method(name string) (*Method, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Capture reads a factory contract from a token such as (*ServiceFactory)(nil),
// a ServiceFactory value or its reflect.Type.
func Capture(token any) (*Contract, error) {
	if token == nil {
		return nil, &InvalidArgumentError{Argument: "contract", Reason: "contract cannot be nil"}
	}

	t, ok := token.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(token)
	}
	return captureType(t)
}

func captureType(t reflect.Type) (*Contract, error) {
	if t == nil {
		return nil, &InvalidArgumentError{Argument: "contract", Reason: "contract cannot be nil"}
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, &InvalidArgumentError{
			Argument: "contract",
			Reason:   fmt.Sprintf("%v is not a struct of func fields", t),
		}
	}

	contract := &Contract{Type: t}
	for _, f := range signature.Fields(t) {
		if !f.Exported || f.Type.Kind() != reflect.Func {
			return nil, &InvalidArgumentError{
				Argument: "contract",
				Reason:   fmt.Sprintf("field %s of %v must be an exported func", f.Name, t),
			}
		}

		m, err := captureMethod(f)
		if err != nil {
			return nil, &InvalidArgumentError{
				Argument: "contract",
				Reason:   fmt.Sprintf("method %s of %v: %v", f.Name, t, err),
			}
		}
		m.pos = len(contract.Methods)
		contract.Methods = append(contract.Methods, m)
	}

	return contract, nil
}

func captureMethod(f signature.Field) (*Method, error) {
	fn := f.Type

	if fn.IsVariadic() {
		return nil, fmt.Errorf("variadic methods are not supported")
	}
	switch {
	case fn.NumOut() == 1:
	case fn.NumOut() == 2 && fn.Out(1) == errorType:
	default:
		return nil, fmt.Errorf("must return (R) or (R, error), got %v", fn)
	}

	names := signature.ParseArgNames(f.Tag.Get("factory"))
	if len(names) != fn.NumIn() {
		return nil, fmt.Errorf("factory tag names %d parameters, func takes %d", len(names), fn.NumIn())
	}

	params := make([]signature.Param, fn.NumIn())
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("parameter %d has no name", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate parameter name %q", name)
		}
		seen[name] = true
		params[i] = signature.Param{Name: name, Type: fn.In(i)}
	}

	return &Method{
		Name:         f.Name,
		Params:       params,
		Result:       fn.Out(0),
		ReturnsError: fn.NumOut() == 2,
		field:        f.Index,
		fn:           fn,
	}, nil
}
