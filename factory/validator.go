package factory

import (
	"reflect"

	"github.com/toutaio/toutago-nasc-typed-factories/signature"
)

// Validate checks that contract can construct concrete with ctors.
//
// Methods returning concrete, or a slice of it, are candidates. There must
// be at least one, and every candidate needs a matching constructor.
// Validate has no side effects.
func Validate(contract *Contract, concrete reflect.Type, ctors []*signature.Constructor) error {
	var candidates []*Method
	for _, m := range contract.Methods {
		if KindOf(m.Result, concrete) != Incompatible {
			candidates = append(candidates, m)
		}
	}

	if len(candidates) == 0 {
		return &CannotConstructError{Contract: contract.Type, Concrete: concrete}
	}

	var mismatched []*Method
	for _, m := range candidates {
		if _, ok := FirstMatch(m.Params, ctors); !ok {
			mismatched = append(mismatched, m)
		}
	}

	if len(mismatched) > 0 {
		return &SignatureMismatchError{
			Contract: contract.Type,
			Concrete: concrete,
			Methods:  mismatched,
		}
	}
	return nil
}
