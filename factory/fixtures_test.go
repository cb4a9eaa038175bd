package factory

import (
	"reflect"

	"github.com/toutaio/toutago-nasc-typed-factories/signature"
)

type Logger interface {
	Log(msg string)
}

type consoleLogger struct {
	lines []string
}

func (l *consoleLogger) Log(msg string) { l.lines = append(l.lines, msg) }

type Service interface {
	Value() int
}

type ParameteredService struct {
	Number int
	Logger Logger
}

func (s *ParameteredService) Value() int { return s.Number }

type parameteredParams struct {
	signature.In

	Number int
	Logger Logger `inject:"optional"`
}

func NewParameteredService(p parameteredParams) *ParameteredService {
	return &ParameteredService{Number: p.Number, Logger: p.Logger}
}

type MisalignedParameteredService struct {
	Number int
}

type misalignedParams struct {
	signature.In

	Integer int
}

func NewMisalignedParameteredService(p misalignedParams) *MisalignedParameteredService {
	return &MisalignedParameteredService{Number: p.Integer}
}

type ServiceFactory struct {
	Create func(number int) *ParameteredService `factory:"number"`
}

type MisalignedFactory struct {
	Create func(number int) *MisalignedParameteredService `factory:"number"`
}

type AbstractFactory struct {
	Create func(number int) Service `factory:"number"`
}

type SafeFactory struct {
	Create func(number int) (*ParameteredService, error) `factory:"number"`
}

type SequenceFactory struct {
	CreateAll func() []*ParameteredService
}

type MixedFactory struct {
	Create   func(number int) *ParameteredService `factory:"number"`
	Describe func() string
}

var (
	parameteredType = reflect.TypeOf(&ParameteredService{})
	misalignedType  = reflect.TypeOf(&MisalignedParameteredService{})
)

func mustCapture(token any) *Contract {
	c, err := Capture(token)
	if err != nil {
		panic(err)
	}
	return c
}

func mustParse(fn any) *signature.Constructor {
	c, err := signature.Parse(fn)
	if err != nil {
		panic(err)
	}
	return c
}

type resolveCall struct {
	concrete  reflect.Type
	overrides map[string]any
	ctors     []*signature.Constructor
}

type registeredFactory struct {
	contract reflect.Type
	build    func() (any, error)
	name     string
}

// fakeResolver records what the builder and handlers ask for.
type fakeResolver struct {
	result any
	err    error

	calls          []resolveCall
	constructibles []reflect.Type
	factories      []registeredFactory
	registerErr    error
}

func (r *fakeResolver) ResolveNewWith(concrete reflect.Type, overrides map[string]any, ctors ...*signature.Constructor) (any, error) {
	r.calls = append(r.calls, resolveCall{concrete: concrete, overrides: overrides, ctors: ctors})
	return r.result, r.err
}

func (r *fakeResolver) RegisterConstructible(concrete reflect.Type, _ ...any) error {
	if r.registerErr != nil {
		return r.registerErr
	}
	r.constructibles = append(r.constructibles, concrete)
	return nil
}

func (r *fakeResolver) RegisterAs(contract reflect.Type, build func() (any, error), name string) error {
	r.factories = append(r.factories, registeredFactory{contract: contract, build: build, name: name})
	return nil
}

func (r *fakeResolver) IsRegistered(t reflect.Type, name string) bool {
	for _, f := range r.factories {
		if f.contract == t && f.name == name {
			return true
		}
	}
	return false
}

type looseParams struct {
	signature.In

	Number any
}

func newLooseService(p looseParams) *ParameteredService {
	n, _ := p.Number.(int)
	return &ParameteredService{Number: -n}
}
