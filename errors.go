package nasc

import (
	"fmt"
	"reflect"
	"strings"
)

// InvalidBindingError is returned when a binding has invalid parameters.
type InvalidBindingError struct {
	Reason string
}

func (e *InvalidBindingError) Error() string {
	return fmt.Sprintf("invalid binding: %s", e.Reason)
}

// ResolutionError is returned when instance resolution fails.
type ResolutionError struct {
	Type    reflect.Type
	Name    string
	Cause   error
	Context string
}

func (e *ResolutionError) Error() string {
	typeStr := "unknown"
	if e.Type != nil {
		typeStr = e.Type.String()
	}

	nameStr := ""
	if e.Name != "" {
		nameStr = fmt.Sprintf(" (name=%s)", e.Name)
	}

	contextStr := ""
	if e.Context != "" {
		contextStr = fmt.Sprintf(": %s", e.Context)
	}

	causeStr := ""
	if e.Cause != nil {
		causeStr = fmt.Sprintf(": %v", e.Cause)
	}

	return fmt.Sprintf("failed to resolve %s%s%s%s", typeStr, nameStr, contextStr, causeStr)
}

// Unwrap returns the underlying cause error.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// UnknownParameterError is returned when no constructor of a type accepts
// the supplied named arguments.
type UnknownParameterError struct {
	Type  reflect.Type
	Names []string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("no constructor of %v accepts the arguments [%s]", e.Type, strings.Join(e.Names, ", "))
}

// ValidationError indicates a problem found during binding validation.
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation failed: %v", e.Errors[0])
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("validation failed with %d errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		b.WriteString(fmt.Sprintf("  %d. %v\n", i+1, err))
	}
	return b.String()
}

func (e *ValidationError) Unwrap() []error {
	return e.Errors
}
