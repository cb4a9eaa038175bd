package nasc

// Lifetime tells how often a binding builds a new instance.
type Lifetime string

const (
	// LifetimeTransient builds on every resolution. Bind, BindConstructor and
	// RegisterConstructible use it.
	LifetimeTransient Lifetime = "transient"

	// LifetimeSingleton builds once, on first resolution, per binding key.
	LifetimeSingleton Lifetime = "singleton"

	// LifetimeFactory delegates every resolution to a FactoryFunc. Instance,
	// Factory and RegisterAs bindings, typed factories among them, use it.
	LifetimeFactory Lifetime = "factory"
)

func (l Lifetime) String() string {
	return string(l)
}

// FactoryFunc builds an instance on demand. It receives the container so it
// can resolve what it needs.
//
//	container.Factory((*Connection)(nil), func(c *Nasc) (interface{}, error) {
//	    cfg := c.Make((*Config)(nil)).(*Config)
//	    return NewConnection(cfg.DSN), nil
//	})
type FactoryFunc func(*Nasc) (interface{}, error)
