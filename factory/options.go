package factory

import "github.com/rs/zerolog"

// Option configures a Builder.
type Option func(*Builder) error

// WithLogger sets the logger registrations are reported to. The default
// logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Builder) error {
		b.log = logger.With().Str("component", "factory").Logger()
		return nil
	}
}

// WithCatalog adds a catalog consulted for the markers of convention
// registration candidates.
func WithCatalog(c *Catalog) Option {
	return func(b *Builder) error {
		if c == nil {
			return &InvalidArgumentError{Argument: "catalog", Reason: "catalog cannot be nil"}
		}
		b.catalogs = append(b.catalogs, c)
		return nil
	}
}
