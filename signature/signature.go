// Package signature describes constructors as ordered lists of named, typed
// parameters.
//
// Go does not record parameter names of functions, so names come from one of
// three constructor shapes:
//
//	// Parameter object: every exported field is a parameter.
//	type ServiceParams struct {
//	    signature.In
//
//	    Number int
//	    Logger Logger `inject:"optional"`
//	}
//	func NewService(p ServiceParams) *Service
//
//	// Positional: parameters have no name and are resolved by type only.
//	func NewService(logger Logger) *Service
//
//	// Implicit: no constructor at all, fields tagged with inject are parameters.
//	type Service struct {
//	    Number int    `inject:""`
//	    Logger Logger `inject:"name=console"`
//	}
//
// A field's parameter name is its `arg` tag, or the field name with the first
// rune lower-cased.
package signature

import (
	"errors"
	"fmt"
	"reflect"
)

// In marks a struct as a parameter object when embedded anonymously.
type In struct{}

var (
	inType    = reflect.TypeOf(In{})
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// Shape tells how a constructor receives its parameters.
type Shape int

const (
	// Positional constructors take their parameters as plain function inputs.
	Positional Shape = iota
	// ParamObject constructors take a single struct embedding In.
	ParamObject
	// Implicit constructors allocate the struct and assign its tagged fields.
	Implicit
)

func (s Shape) String() string {
	switch s {
	case Positional:
		return "positional"
	case ParamObject:
		return "param-object"
	case Implicit:
		return "implicit"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Param is one constructor parameter.
type Param struct {
	// Name is empty for positional parameters.
	Name string
	Type reflect.Type

	// Optional parameters get their zero value when they cannot be resolved.
	Optional bool

	// Binding names the container binding used to resolve the parameter.
	Binding string

	index int
}

// Index is the input position for positional parameters and the struct
// field index otherwise.
func (p Param) Index() int {
	return p.index
}

func (p Param) String() string {
	if p.Name == "" {
		return p.Type.String()
	}
	return fmt.Sprintf("%s %v", p.Name, p.Type)
}

// Constructor is the signature of one way to build a concrete type.
type Constructor struct {
	Shape    Shape
	Produces reflect.Type
	Params   []Param

	fn           reflect.Value
	object       reflect.Type
	returnsError bool
}

// ErrNilConstructor is returned by Parse for a nil constructor.
var ErrNilConstructor = errors.New("constructor cannot be nil")

// Parse analyzes a constructor function.
// Supported signatures:
//   - func(...) T
//   - func(...) (T, error)
//   - func(P) T / func(P) (T, error) where P embeds In
func Parse(constructor any) (*Constructor, error) {
	if constructor == nil {
		return nil, ErrNilConstructor
	}

	fnValue := reflect.ValueOf(constructor)
	fnType := fnValue.Type()

	if fnType.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor must be a function, got %v", fnType.Kind())
	}
	if fnValue.IsNil() {
		return nil, ErrNilConstructor
	}
	if fnType.IsVariadic() {
		return nil, fmt.Errorf("constructor %v must not be variadic", fnType)
	}

	numOut := fnType.NumOut()
	if numOut == 0 || numOut > 2 {
		return nil, fmt.Errorf("constructor must return (T) or (T, error), got %d return values", numOut)
	}

	returnsError := false
	if numOut == 2 {
		if fnType.Out(1) != errorType {
			return nil, fmt.Errorf("constructor's second return value must be error, got %v", fnType.Out(1))
		}
		returnsError = true
	}

	c := &Constructor{
		Produces:     fnType.Out(0),
		fn:           fnValue,
		returnsError: returnsError,
	}

	if fnType.NumIn() == 1 && IsParamObject(fnType.In(0)) {
		params, err := objectParams(fnType.In(0), false)
		if err != nil {
			return nil, err
		}
		c.Shape = ParamObject
		c.object = fnType.In(0)
		c.Params = params
		return c, nil
	}

	c.Shape = Positional
	c.Params = make([]Param, fnType.NumIn())
	for i := 0; i < fnType.NumIn(); i++ {
		c.Params[i] = Param{Type: fnType.In(i), index: i}
	}
	return c, nil
}

// ImplicitFor returns the implicit constructor of a pointer-to-struct type.
func ImplicitFor(typ reflect.Type) (*Constructor, error) {
	if typ == nil || typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("implicit constructor requires a pointer to struct, got %v", typ)
	}

	params, err := objectParams(typ.Elem(), true)
	if err != nil {
		return nil, err
	}

	return &Constructor{
		Shape:    Implicit,
		Produces: typ,
		Params:   params,
	}, nil
}

// IsParamObject reports whether typ is a struct embedding In.
func IsParamObject(typ reflect.Type) bool {
	if typ.Kind() != reflect.Struct {
		return false
	}
	for _, f := range Fields(typ) {
		if f.Embedded && f.Type == inType {
			return true
		}
	}
	return false
}

// objectParams lists the parameters carried by a struct's fields. With
// taggedOnly, only fields carrying an inject tag count.
func objectParams(structType reflect.Type, taggedOnly bool) ([]Param, error) {
	var params []Param
	seen := make(map[string]bool)

	for _, f := range Fields(structType) {
		if !f.Exported || (f.Embedded && f.Type == inType) {
			continue
		}

		tag, tagged := f.Tag.Lookup("inject")
		if taggedOnly && !tagged {
			continue
		}

		opts := ParseInjectTag(tag)
		if opts.Skip {
			continue
		}

		name := ParamName(f.StructField())
		if seen[name] {
			return nil, fmt.Errorf("duplicate parameter name %q in %v", name, structType)
		}
		seen[name] = true

		params = append(params, Param{
			Name:     name,
			Type:     f.Type,
			Optional: opts.Optional,
			Binding:  opts.Name,
			index:    f.Index,
		})
	}

	return params, nil
}

// Lookup returns the parameter with the given name.
func (c *Constructor) Lookup(name string) (Param, bool) {
	if name == "" {
		return Param{}, false
	}
	for _, p := range c.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Same reports whether both signatures describe the same constructor.
// Functions are compared by code pointer, so closures created from one
// function literal count as the same constructor.
func (c *Constructor) Same(other *Constructor) bool {
	if c.Shape != other.Shape || c.Produces != other.Produces {
		return false
	}
	if c.Shape == Implicit {
		return true
	}
	return c.fn.Pointer() == other.fn.Pointer()
}

func (c *Constructor) String() string {
	return fmt.Sprintf("%s constructor of %v %v", c.Shape, c.Produces, c.Params)
}

// Invoke builds an instance. args must be aligned with c.Params.
func (c *Constructor) Invoke(args []reflect.Value) (any, error) {
	if len(args) != len(c.Params) {
		return nil, fmt.Errorf("constructor of %v expects %d arguments, got %d", c.Produces, len(c.Params), len(args))
	}

	switch c.Shape {
	case Implicit:
		instance := reflect.New(c.Produces.Elem())
		elem := instance.Elem()
		for i, p := range c.Params {
			elem.Field(p.index).Set(args[i])
		}
		return instance.Interface(), nil

	case ParamObject:
		object := reflect.New(c.object).Elem()
		for i, p := range c.Params {
			object.Field(p.index).Set(args[i])
		}
		return c.call([]reflect.Value{object})

	default:
		return c.call(args)
	}
}

func (c *Constructor) call(in []reflect.Value) (any, error) {
	results := c.fn.Call(in)

	if c.returnsError {
		if errValue := results[1]; !errValue.IsNil() {
			return nil, fmt.Errorf("constructor returned error: %w", errValue.Interface().(error))
		}
	}

	return results[0].Interface(), nil
}
