package factory

import "github.com/toutaio/toutago-nasc-typed-factories/signature"

// Matches reports whether ctor can satisfy a call with the given method
// parameters: each of them needs a constructor parameter with the same name
// and the identical type. Constructor parameters the method does not cover
// are left to the resolver.
func Matches(methodParams []signature.Param, ctor *signature.Constructor) bool {
	for _, mp := range methodParams {
		cp, ok := ctor.Lookup(mp.Name)
		if !ok || cp.Type != mp.Type {
			return false
		}
	}
	return true
}

// FirstMatch returns the index of the first constructor, in declaration
// order, that matches the method parameters.
func FirstMatch(methodParams []signature.Param, ctors []*signature.Constructor) (int, bool) {
	for i, ctor := range ctors {
		if Matches(methodParams, ctor) {
			return i, true
		}
	}
	return -1, false
}
