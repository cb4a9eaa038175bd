package nasc

import (
	"fmt"
	"reflect"

	"github.com/toutaio/toutago-nasc-typed-factories/signature"
)

type ExampleGreeter interface {
	Greet() string
}

type ExampleSimpleGreeter struct{}

func (g *ExampleSimpleGreeter) Greet() string {
	return "Hello, Nasc!"
}

type ExampleTicket struct {
	Seat    string
	Greeter ExampleGreeter
}

type exampleTicketParams struct {
	signature.In

	Seat    string
	Greeter ExampleGreeter
}

func NewExampleTicket(p exampleTicketParams) *ExampleTicket {
	return &ExampleTicket{Seat: p.Seat, Greeter: p.Greeter}
}

func ExampleNasc_Make() {
	container := New()

	_ = container.Bind((*ExampleGreeter)(nil), &ExampleSimpleGreeter{})
	greeter := container.Make((*ExampleGreeter)(nil)).(ExampleGreeter)

	fmt.Println(greeter.Greet())
	// Output: Hello, Nasc!
}

func ExampleNasc_ResolveNewWith() {
	container := New()
	_ = container.Bind((*ExampleGreeter)(nil), &ExampleSimpleGreeter{})

	ticketType := reflect.TypeOf(&ExampleTicket{})
	if err := container.RegisterConstructible(ticketType, NewExampleTicket); err != nil {
		fmt.Println(err)
		return
	}

	instance, err := container.ResolveNewWith(ticketType, map[string]interface{}{"seat": "12F"})
	if err != nil {
		fmt.Println(err)
		return
	}

	ticket := instance.(*ExampleTicket)
	fmt.Println(ticket.Seat, ticket.Greeter.Greet())

	_, err = container.ResolveNewWith(ticketType, map[string]interface{}{"gate": "B"})
	fmt.Println(err)
	// Output:
	// 12F Hello, Nasc!
	// failed to resolve *nasc.ExampleTicket: no constructor of *nasc.ExampleTicket accepts the arguments [gate]
}

func ExampleNasc_MakeAll() {
	container := New()
	_ = container.Bind((*ExampleGreeter)(nil), &ExampleSimpleGreeter{})
	_ = container.BindNamed((*ExampleGreeter)(nil), &ExampleSimpleGreeter{}, "formal")

	fmt.Println(len(container.MakeAll((*ExampleGreeter)(nil))))
	// Output: 2
}
