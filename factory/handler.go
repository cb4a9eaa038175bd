package factory

import (
	"fmt"
	"reflect"

	"github.com/toutaio/toutago-nasc-typed-factories/signature"
)

// Invocation is one call made against a factory method.
type Invocation struct {
	Method *Method
	Args   []any
}

// Handler turns factory method calls into resolutions of one concrete type.
// It holds no mutable state and may be used concurrently.
type Handler struct {
	resolver Resolver
	contract *Contract
	concrete reflect.Type
	kinds    []ReturnKind

	// ctors holds, per method, the constructor its calls are built with.
	// It is nil when the handler was built without constructors.
	ctors []*signature.Constructor
}

// NewHandler binds the methods of contract to concrete. Return kinds are
// computed here, once.
//
// Given ctors, every single-result method is bound to the first of them its
// parameters match, and its calls are built with that constructor only.
// Without ctors the resolver selects the constructor on each call.
func NewHandler(resolver Resolver, contract *Contract, concrete reflect.Type, ctors ...*signature.Constructor) *Handler {
	h := &Handler{
		resolver: resolver,
		contract: contract,
		concrete: concrete,
		kinds:    make([]ReturnKind, len(contract.Methods)),
	}
	if len(ctors) > 0 {
		h.ctors = make([]*signature.Constructor, len(contract.Methods))
	}

	for i, m := range contract.Methods {
		h.kinds[i] = KindOf(m.Result, concrete)
		if h.ctors == nil || h.kinds[i] != Single {
			continue
		}
		if j, ok := FirstMatch(m.Params, ctors); ok {
			h.ctors[i] = ctors[j]
		}
	}
	return h
}

// Constructor returns the constructor bound to a method.
func (h *Handler) Constructor(m *Method) (*signature.Constructor, bool) {
	if h.ctors == nil || h.Kind(m) == Incompatible || h.ctors[m.pos] == nil {
		return nil, false
	}
	return h.ctors[m.pos], true
}

// Kind returns the return kind of a contract method.
func (h *Handler) Kind(m *Method) ReturnKind {
	if m.pos < 0 || m.pos >= len(h.kinds) || h.contract.Methods[m.pos] != m {
		return Incompatible
	}
	return h.kinds[m.pos]
}

// Handle resolves the concrete type for an invocation. Arguments are passed
// to the constructor by the method's parameter names. Errors from the
// resolver are returned as is.
func (h *Handler) Handle(inv Invocation) (any, error) {
	switch h.Kind(inv.Method) {
	case Single:
		var ctors []*signature.Constructor
		if h.ctors != nil {
			ctor, ok := h.Constructor(inv.Method)
			if !ok {
				return nil, &SignatureMismatchError{
					Contract: h.contract.Type,
					Concrete: h.concrete,
					Methods:  []*Method{inv.Method},
				}
			}
			ctors = []*signature.Constructor{ctor}
		}

		var overrides map[string]any
		if len(inv.Args) > 0 || len(inv.Method.Params) > 0 {
			var err error
			if overrides, err = namedArgs(inv); err != nil {
				return nil, err
			}
		}
		return h.resolver.ResolveNewWith(h.concrete, overrides, ctors...)

	case Sequence:
		return nil, &NotSupportedError{
			Operation: fmt.Sprintf("resolving every %v from %s", h.concrete, inv.Method),
		}

	default:
		return nil, &IncompatibleReturnTypeError{Concrete: h.concrete, Method: inv.Method}
	}
}

func namedArgs(inv Invocation) (map[string]any, error) {
	params := inv.Method.Params
	if len(inv.Args) != len(params) {
		return nil, &InvalidArgumentError{
			Argument: "invocation",
			Reason:   fmt.Sprintf("%s takes %d arguments, got %d", inv.Method, len(params), len(inv.Args)),
		}
	}

	overrides := make(map[string]any, len(params))
	for i, p := range params {
		overrides[p.Name] = inv.Args[i]
	}
	return overrides, nil
}
