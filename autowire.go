package nasc

import (
	"fmt"
	"reflect"

	"github.com/toutaio/toutago-nasc-typed-factories/signature"
)

// AutoWire automatically injects dependencies into tagged struct fields of an
// existing instance. Fields with `inject` tags will be resolved from the container.
//
// Supported tag options:
//   - `inject:""` - basic injection (fails if not found)
//   - `inject:"optional"` - optional (left untouched if not found)
//   - `inject:"name=foo"` - uses named binding
//   - `inject:"-"` - never injected
//
// Example:
//
//	type Service struct {
//	    Logger   Logger   `inject:""`
//	    Cache    Cache    `inject:"optional"`
//	    FileLog  Logger   `inject:"name=file"`
//	}
//
//	service := &Service{}
//	container.AutoWire(service)
func (n *Nasc) AutoWire(instance interface{}) error {
	if instance == nil {
		return fmt.Errorf("cannot auto-wire nil instance")
	}

	value := reflect.ValueOf(instance)
	if value.Kind() != reflect.Ptr || value.IsNil() {
		return fmt.Errorf("AutoWire requires a non-nil pointer to struct, got %T", instance)
	}

	elem := value.Elem()
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("AutoWire requires a pointer to struct, got pointer to %v", elem.Kind())
	}

	implicit, err := signature.ImplicitFor(value.Type())
	if err != nil {
		return err
	}

	for _, p := range implicit.Params {
		field := elem.Field(p.Index())
		if !field.CanSet() {
			return fmt.Errorf("field %s is not settable", p.Name)
		}

		resolved, err := n.resolve(p.Type, p.Binding)
		if err != nil {
			if p.Optional {
				continue
			}
			return fmt.Errorf("failed to inject field %s: %w", p.Name, err)
		}
		if resolved == nil {
			continue
		}

		resolvedValue := reflect.ValueOf(resolved)
		if !resolvedValue.Type().AssignableTo(p.Type) {
			return fmt.Errorf("resolved type %v is not assignable to field %s of type %v",
				resolvedValue.Type(), p.Name, p.Type)
		}
		field.Set(resolvedValue)
	}

	return nil
}
