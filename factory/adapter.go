package factory

import (
	"fmt"
	"reflect"
)

// Build allocates a contract implementation whose func fields forward to the
// handler. Single-result methods panic when the call fails, methods
// returning (R, error) report it.
func (h *Handler) Build() (any, error) {
	impl := reflect.New(h.contract.Type)
	elem := impl.Elem()

	for _, m := range h.contract.Methods {
		elem.Field(m.field).Set(reflect.MakeFunc(m.fn, h.forward(m)))
	}

	return impl.Interface(), nil
}

func (h *Handler) forward(m *Method) func([]reflect.Value) []reflect.Value {
	kind := h.Kind(m)

	return func(in []reflect.Value) []reflect.Value {
		if kind == Incompatible {
			panic(&IncompatibleReturnTypeError{Concrete: h.concrete, Method: m})
		}

		args := make([]any, len(in))
		for i, v := range in {
			args[i] = v.Interface()
		}

		instance, err := h.Handle(Invocation{Method: m, Args: args})
		if err != nil {
			if !m.ReturnsError {
				panic(err)
			}
			return []reflect.Value{reflect.Zero(m.Result), errorValue(err)}
		}

		result, err := resultValue(m, instance)
		if err != nil {
			panic(err)
		}
		if m.ReturnsError {
			return []reflect.Value{result, reflect.Zero(errorType)}
		}
		return []reflect.Value{result}
	}
}

func resultValue(m *Method, instance any) (reflect.Value, error) {
	result := reflect.New(m.Result).Elem()
	if instance == nil {
		return result, nil
	}

	v := reflect.ValueOf(instance)
	if !v.Type().AssignableTo(m.Result) {
		return reflect.Value{}, fmt.Errorf("%s: resolved %v is not assignable to %v", m, v.Type(), m.Result)
	}
	result.Set(v)
	return result, nil
}

func errorValue(err error) reflect.Value {
	v := reflect.New(errorType).Elem()
	v.Set(reflect.ValueOf(err))
	return v
}
