package factory

import (
	"fmt"
	"reflect"
)

// Marker declares the factory that constructs a concrete type.
type Marker struct {
	// Contract is a contract token such as (*ServiceFactory)(nil).
	Contract any

	// Name registers the factory under a name.
	Name string

	// Constructors of the concrete type, in declaration order. Empty means
	// the type is built from its inject-tagged fields.
	Constructors []any
}

// Marked is implemented by concrete types that declare their own marker.
// FactoryMarker is called on the zero value of the type.
type Marked interface {
	FactoryMarker() Marker
}

var markedType = reflect.TypeOf((*Marked)(nil)).Elem()

// Catalog lists the concrete types of a code unit and the markers declared
// for them. Convention registration scans it instead of the code.
type Catalog struct {
	unit    string
	order   []reflect.Type
	markers map[reflect.Type]*Marker
}

// NewCatalog creates an empty catalog for a code unit, usually a package path.
func NewCatalog(unit string) *Catalog {
	return &Catalog{
		unit:    unit,
		markers: make(map[reflect.Type]*Marker),
	}
}

// Unit returns the code unit name given to NewCatalog.
func (c *Catalog) Unit() string {
	return c.unit
}

// Mark adds concrete with its marker. Marking a type again replaces its marker.
// It panics when concrete is not a concrete type token.
func (c *Catalog) Mark(concrete any, marker Marker) *Catalog {
	t := c.add(concrete)
	m := marker
	c.markers[t] = &m
	return c
}

// Include adds types without markers. They are convention candidates that
// must declare their marker through Marked or another catalog.
func (c *Catalog) Include(types ...any) *Catalog {
	for _, token := range types {
		c.add(token)
	}
	return c
}

func (c *Catalog) add(token any) reflect.Type {
	t, err := concreteTypeOf(token)
	if err != nil {
		panic(fmt.Sprintf("catalog %s: %v", c.unit, err))
	}
	if _, known := c.markers[t]; !known {
		c.order = append(c.order, t)
		c.markers[t] = nil
	}
	return t
}

// Types returns the catalogued types in the order they were added.
func (c *Catalog) Types() []reflect.Type {
	types := make([]reflect.Type, len(c.order))
	copy(types, c.order)
	return types
}

// Lookup returns the marker declared for t.
func (c *Catalog) Lookup(t reflect.Type) (Marker, bool) {
	m := c.markers[t]
	if m == nil {
		return Marker{}, false
	}
	return *m, true
}

// markerOf reads the marker a type declares on itself.
func markerOf(t reflect.Type) (Marker, bool) {
	switch {
	case t.Kind() == reflect.Ptr && t.Elem().Implements(markedType):
		return reflect.Zero(t.Elem()).Interface().(Marked).FactoryMarker(), true
	case t.Implements(markedType):
		return reflect.Zero(t).Interface().(Marked).FactoryMarker(), true
	default:
		return Marker{}, false
	}
}
