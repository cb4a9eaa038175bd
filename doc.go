// Package nasc provides a dependency injection container for Go with typed
// factory support.
//
// Nasc (Old Irish: "Link" or "Bond") resolves dependencies at runtime from
// bindings registered up front. Besides interface bindings it knows how to
// build constructible concrete types with named argument overrides, which is
// what the factory package relies on to route factory calls into constructors.
//
// # Quick Start
//
//	container := nasc.New()
//	container.Bind((*Logger)(nil), &ConsoleLogger{})
//	logger := container.Make((*Logger)(nil)).(Logger)
//
// # Lifetimes
//
// Transient bindings build a new instance each time, singletons are built
// lazily once per type and name, and factory bindings call a function:
//
//	container.Bind((*Service)(nil), &MyService{})
//	container.Singleton((*Cache)(nil), &MemoryCache{})
//	container.Factory((*Conn)(nil), func(c *nasc.Nasc) (interface{}, error) {
//	    return Dial(c.Make((*Config)(nil)).(*Config).DSN)
//	})
//
// # Constructors
//
// Constructors are plain functions. Their parameters are resolved by type,
// or by name when the constructor takes a parameter object:
//
//	type ReportParams struct {
//	    signature.In
//
//	    Title  string
//	    Logger Logger `inject:"optional"`
//	}
//
//	container.RegisterConstructible(reflect.TypeOf(&Report{}), NewReport)
//	report, err := container.ResolveNewWith(reflect.TypeOf(&Report{}), map[string]interface{}{"title": "Q3"})
//
// # Auto-Wiring
//
// Exported fields tagged with inject are filled from the container:
//
//	type UserService struct {
//	    DB     Database `inject:""`
//	    Logger Logger   `inject:"name=file"`
//	}
//
//	service := &UserService{}
//	container.AutoWire(service)
//
// # Error Handling
//
// Make and MakeNamed panic on failure, MakeSafe and the generic Resolve
// return a *ResolutionError wrapping the cause:
//
//	service, err := container.MakeSafe((*Service)(nil))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// Registration and resolution are safe for concurrent use.
package nasc
