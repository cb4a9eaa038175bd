// Package registry provides thread-safe storage and retrieval of dependency bindings.
package registry

import (
	"fmt"
	"reflect"
	"sync"
)

// Binding represents a mapping between an abstract type and the way to produce it.
type Binding struct {
	// AbstractType is the type being bound (e.g., Logger interface or a factory contract struct)
	AbstractType reflect.Type

	// ConcreteType is the implementation type (e.g., *ConsoleLogger)
	// For factory bindings, this may be nil
	ConcreteType reflect.Type

	// Lifetime defines how instances are managed
	// Values: "transient", "singleton", "factory"
	Lifetime string

	// Factory is the custom creation function for factory bindings
	Factory interface{}

	// Constructors holds constructor signatures in declaration order
	Constructors []interface{}

	// Name is an optional qualifier; empty for the default binding
	Name string
}

// Key identifies a binding.
type Key struct {
	Type reflect.Type
	Name string
}

func (k Key) String() string {
	if k.Name == "" {
		return k.Type.String()
	}
	return fmt.Sprintf("%v (name=%s)", k.Type, k.Name)
}

// Registry provides thread-safe storage for bindings.
// Bindings are keyed by (type, name) and keep their registration order per type.
type Registry struct {
	mu       sync.RWMutex
	bindings map[Key]*Binding
	order    map[reflect.Type][]*Binding
}

// New creates a new Registry instance.
func New() *Registry {
	return &Registry{
		bindings: make(map[Key]*Binding),
		order:    make(map[reflect.Type][]*Binding),
	}
}

// Register stores a binding in the registry.
// Returns an error if a binding with the same type and name already exists.
//
// This method is goroutine-safe.
func (r *Registry) Register(binding *Binding) error {
	if binding == nil {
		return fmt.Errorf("binding cannot be nil")
	}
	if binding.AbstractType == nil {
		return fmt.Errorf("binding must have an abstract type")
	}

	key := Key{Type: binding.AbstractType, Name: binding.Name}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bindings[key]; exists {
		return &BindingAlreadyExistsError{Key: key}
	}

	r.bindings[key] = binding
	r.order[binding.AbstractType] = append(r.order[binding.AbstractType], binding)
	return nil
}

// Get retrieves a binding by abstract type and name ("" for the default binding).
//
// This method is goroutine-safe.
func (r *Registry) Get(abstractType reflect.Type, name string) (*Binding, error) {
	key := Key{Type: abstractType, Name: name}

	r.mu.RLock()
	defer r.mu.RUnlock()

	binding, exists := r.bindings[key]
	if !exists {
		return nil, &BindingNotFoundError{Key: key}
	}

	return binding, nil
}

// Has checks if a binding exists for the given type and name.
//
// This method is goroutine-safe.
func (r *Registry) Has(abstractType reflect.Type, name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.bindings[Key{Type: abstractType, Name: name}]
	return exists
}

// Update replaces the stored binding for the same key through fn.
// fn runs under the write lock and must not call back into the registry.
func (r *Registry) Update(abstractType reflect.Type, name string, fn func(*Binding) error) error {
	key := Key{Type: abstractType, Name: name}

	r.mu.Lock()
	defer r.mu.Unlock()

	binding, exists := r.bindings[key]
	if !exists {
		return &BindingNotFoundError{Key: key}
	}
	return fn(binding)
}

// All returns every binding of a type, named and unnamed, in registration order.
//
// This method is goroutine-safe.
func (r *Registry) All(abstractType reflect.Type) []*Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bindings := r.order[abstractType]
	result := make([]*Binding, len(bindings))
	copy(result, bindings)
	return result
}

// Names returns the names of all named bindings of a type, in registration order.
func (r *Registry) Names(abstractType reflect.Type) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for _, b := range r.order[abstractType] {
		if b.Name != "" {
			names = append(names, b.Name)
		}
	}
	return names
}

// Types returns all types that have bindings (named or unnamed).
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]reflect.Type, 0, len(r.order))
	for t := range r.order {
		types = append(types, t)
	}
	return types
}

// BindingAlreadyExistsError is returned when attempting to register a duplicate binding.
type BindingAlreadyExistsError struct {
	Key Key
}

func (e *BindingAlreadyExistsError) Error() string {
	return fmt.Sprintf("binding already exists for type %v", e.Key)
}

// BindingNotFoundError is returned when a requested binding does not exist.
type BindingNotFoundError struct {
	Key Key
}

func (e *BindingNotFoundError) Error() string {
	return fmt.Sprintf("binding not found for type %v", e.Key)
}
