package factory

import (
	"fmt"
	"reflect"
)

// ConventionRegistration registers the factories of many concrete types at
// once, each described by its marker.
type ConventionRegistration struct {
	builder    *Builder
	candidates []reflect.Type
	scanned    *Catalog
	except     map[reflect.Type]bool
	err        error
	committed  bool
}

// RegisterFactoriesFor starts a convention registration for the given
// concrete type tokens.
//
// Example:
//
//	err := builder.RegisterFactoriesFor((*Report)(nil), (*Invoice)(nil)).
//	    Except((*Draft)(nil)).
//	    Commit()
func (b *Builder) RegisterFactoriesFor(types ...any) *ConventionRegistration {
	r := b.newConvention()
	for _, token := range types {
		t, err := concreteTypeOf(token)
		if err != nil {
			r.fail(err)
			continue
		}
		r.candidates = append(r.candidates, t)
	}
	return r
}

// RegisterCatalog starts a convention registration for every type of a catalog.
func (b *Builder) RegisterCatalog(c *Catalog) *ConventionRegistration {
	r := b.newConvention()
	if c == nil {
		r.fail(&InvalidArgumentError{Argument: "catalog", Reason: "catalog cannot be nil"})
		return r
	}
	r.scanned = c
	r.candidates = c.Types()
	return r
}

func (b *Builder) newConvention() *ConventionRegistration {
	return &ConventionRegistration{
		builder: b,
		except:  make(map[reflect.Type]bool),
	}
}

func (r *ConventionRegistration) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Except removes types from the candidates.
func (r *ConventionRegistration) Except(types ...any) *ConventionRegistration {
	for _, token := range types {
		t, err := concreteTypeOf(token)
		if err != nil {
			r.fail(err)
			continue
		}
		r.except[t] = true
	}
	return r
}

// Commit registers a factory for every remaining candidate. Either all of
// them are valid and registered, or none is: a candidate without a marker
// fails with *MissingMarkerError naming every such type, an invalid factory
// fails with its validation error.
func (r *ConventionRegistration) Commit() error {
	if r.committed {
		return &InvalidOperationError{Reason: "convention registration already committed"}
	}
	if r.err != nil {
		return r.err
	}

	type candidate struct {
		concrete reflect.Type
		marker   Marker
	}

	var (
		marked  []candidate
		missing []reflect.Type
	)
	for _, t := range r.candidates {
		if r.except[t] {
			continue
		}
		marker, ok := r.lookup(t)
		if !ok {
			missing = append(missing, t)
			continue
		}
		marked = append(marked, candidate{concrete: t, marker: marker})
	}

	if len(missing) > 0 {
		return &MissingMarkerError{Types: missing}
	}

	type bindingKey struct {
		contract reflect.Type
		name     string
	}

	plans := make([]*registration, 0, len(marked))
	claimed := make(map[bindingKey]reflect.Type, len(marked))
	for _, c := range marked {
		contract, err := Capture(c.marker.Contract)
		if err != nil {
			return fmt.Errorf("marker of %v: %w", c.concrete, err)
		}

		key := bindingKey{contract: contract.Key(), name: c.marker.Name}
		if other, ok := claimed[key]; ok {
			return fmt.Errorf("marker of %v: %w", c.concrete, &InvalidOperationError{
				Reason: fmt.Sprintf("factory %v named %q is also marked by %v", contract.Type, c.marker.Name, other),
			})
		}
		claimed[key] = c.concrete

		plan, err := r.builder.plan(contract, c.marker.Name, c.concrete, c.marker.Constructors)
		if err != nil {
			return fmt.Errorf("marker of %v: %w", c.concrete, err)
		}
		plans = append(plans, plan)
	}

	for _, plan := range plans {
		if err := r.builder.commit(plan); err != nil {
			return err
		}
	}
	r.committed = true

	unit := ""
	if r.scanned != nil {
		unit = r.scanned.Unit()
	}
	r.builder.log.Debug().
		Str("unit", unit).
		Int("registered", len(plans)).
		Int("excepted", len(r.except)).
		Msg("factories registered by convention")
	return nil
}

// lookup finds the marker of t in the builder catalogs, then in the scanned
// catalog, then on the type itself.
func (r *ConventionRegistration) lookup(t reflect.Type) (Marker, bool) {
	for _, c := range r.builder.catalogs {
		if m, ok := c.Lookup(t); ok {
			return m, true
		}
	}
	if r.scanned != nil {
		if m, ok := r.scanned.Lookup(t); ok {
			return m, true
		}
	}
	return markerOf(t)
}
