package nasc

import (
	"os"

	"github.com/rs/zerolog"
)

// Option is a function that configures a Nasc container.
type Option func(*Nasc) error

// WithLogger sets the logger the container reports registrations to.
// The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(n *Nasc) error {
		n.log = logger.With().Str("component", "nasc").Logger()
		return nil
	}
}

// WithDebug logs every registration to stderr in a human readable format.
func WithDebug() Option {
	return WithLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger())
}
