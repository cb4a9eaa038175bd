// Package config loads container and factory settings from a YAML or JSON
// file, a .env file and NASC_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	nasc "github.com/toutaio/toutago-nasc-typed-factories"
	"github.com/toutaio/toutago-nasc-typed-factories/factory"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore: NASC_LOGGING__LEVEL=debug sets logging.level.
const EnvPrefix = "NASC_"

// Config holds the settings Load reads.
type Config struct {
	Logging   LoggingConfig   `json:"logging"`
	Container ContainerConfig `json:"container"`
}

// LoggingConfig selects how registrations and resolutions are logged.
type LoggingConfig struct {
	// Level is a zerolog level name. Empty disables logging.
	Level string `json:"level"`
	// Format is "json" or "console".
	Format string `json:"format"`
}

// ContainerConfig configures the container and the factory builder.
type ContainerConfig struct {
	// Debug forces the debug level regardless of Logging.Level.
	Debug bool `json:"debug"`
}

// SetDefaults applies defaults for unset fields.
func (c *LoggingConfig) SetDefaults() {
	if c.Format == "" {
		c.Format = "json"
	}
}

// Validate checks the level and format names.
func (c LoggingConfig) Validate() error {
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("unknown log format %s", c.Format)
	}
	if c.Level == "" {
		return nil
	}
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("unknown log level %s", c.Level)
	}
	return nil
}

// Load reads the configuration file at path, when path is not empty, then
// applies environment overrides. The given .env files are loaded into the
// environment first; without any, a .env file in the working directory is
// loaded if present.
func Load(path string, envFiles ...string) (*Config, error) {
	if err := loadDotenv(envFiles); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}

	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Logging.SetDefaults()
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotenv(files []string) error {
	if len(files) > 0 {
		return godotenv.Load(files...)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Logger builds the logger described by the configuration, writing to w.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level := zerolog.Disabled
	if c.Logging.Level != "" {
		if parsed, err := zerolog.ParseLevel(c.Logging.Level); err == nil {
			level = parsed
		}
	}
	if c.Container.Debug {
		level = zerolog.DebugLevel
	}

	if c.Logging.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ContainerOptions returns the container options for the configuration.
func (c *Config) ContainerOptions(w io.Writer) []nasc.Option {
	return []nasc.Option{nasc.WithLogger(c.Logger(w))}
}

// FactoryOptions returns the factory builder options for the configuration.
func (c *Config) FactoryOptions(w io.Writer) []factory.Option {
	return []factory.Option{factory.WithLogger(c.Logger(w))}
}
