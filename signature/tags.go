package signature

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// InjectOptions represents parsed options from an inject tag.
type InjectOptions struct {
	Skip     bool   // Don't inject this field
	Optional bool   // Leave the zero value if the dependency cannot be resolved
	Name     string // Named binding to use
}

// ParseInjectTag parses an inject struct tag and returns options.
// Supported formats:
//   - `inject:""` - basic injection
//   - `inject:"-"` - never injected
//   - `inject:"optional"` - optional injection
//   - `inject:"name=foo"` - named binding
//   - `inject:"optional,name=foo"` - combined options
func ParseInjectTag(tag string) InjectOptions {
	opts := InjectOptions{}

	if tag == "" {
		return opts
	}

	if tag == "-" {
		opts.Skip = true
		return opts
	}

	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)

		switch {
		case part == "optional":
			opts.Optional = true
		case strings.HasPrefix(part, "name="):
			opts.Name = strings.TrimPrefix(part, "name=")
		}
	}

	return opts
}

// ParseArgNames splits a `factory` tag into positional parameter names.
// Blank entries are kept so callers can report them.
func ParseArgNames(tag string) []string {
	if strings.TrimSpace(tag) == "" {
		return nil
	}
	parts := strings.Split(tag, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ParamName returns the constructor parameter name a struct field stands for:
// the `arg` tag when present, otherwise the field name with its first rune
// lower-cased (Number -> number).
func ParamName(field reflect.StructField) string {
	if name, ok := field.Tag.Lookup("arg"); ok && name != "" {
		return name
	}
	return lowerFirst(field.Name)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
