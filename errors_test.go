package nasc

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/toutaio/toutago-nasc-typed-factories/registry"
)

// Tests

func TestMakeSafe_Success(t *testing.T) {
	container := New()
	_ = container.Bind((*Logger)(nil), &ConsoleLogger{})

	logger, err := container.MakeSafe((*Logger)(nil))
	if err != nil {
		t.Fatalf("MakeSafe failed: %v", err)
	}

	if logger == nil {
		t.Error("Logger not resolved")
	}
}

func TestMakeSafe_NotFound(t *testing.T) {
	container := New()

	logger, err := container.MakeSafe((*Logger)(nil))

	if err == nil {
		t.Error("Expected error for missing binding")
	}
	if logger != nil {
		t.Error("Expected nil instance")
	}

	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Error("Expected ResolutionError")
	}

	var notFound *registry.BindingNotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Expected the registry error in the chain, got %v", err)
	}
}

func TestMakeSafe_NilType(t *testing.T) {
	container := New()

	instance, err := container.MakeSafe(nil)

	if err == nil {
		t.Error("Expected error for nil type")
	}
	if instance != nil {
		t.Error("Expected nil instance")
	}
}

func TestMakeNamedSafe_Success(t *testing.T) {
	container := New()
	_ = container.BindNamed((*Logger)(nil), &ConsoleLogger{}, "console")

	logger, err := container.MakeNamedSafe((*Logger)(nil), "console")
	if err != nil {
		t.Fatalf("MakeNamedSafe failed: %v", err)
	}

	if logger == nil {
		t.Error("Logger not resolved")
	}
}

func TestMakeNamedSafe_NotFound(t *testing.T) {
	container := New()
	_ = container.BindNamed((*Logger)(nil), &ConsoleLogger{}, "console")

	logger, err := container.MakeNamedSafe((*Logger)(nil), "notfound")

	if err == nil {
		t.Error("Expected error for missing named binding")
	}
	if logger != nil {
		t.Error("Expected nil instance")
	}
}

func TestMakeNamedSafe_EmptyName(t *testing.T) {
	container := New()

	instance, err := container.MakeNamedSafe((*Logger)(nil), "")

	if err == nil {
		t.Error("Expected error for empty name")
	}
	if instance != nil {
		t.Error("Expected nil instance")
	}
}

func TestResolutionError_Message(t *testing.T) {
	err := &ResolutionError{
		Type:    nil,
		Name:    "test",
		Context: "test context",
		Cause:   errors.New("underlying error"),
	}

	msg := err.Error()

	if !strings.Contains(msg, "test") {
		t.Error("Error message missing name")
	}
	if !strings.Contains(msg, "test context") {
		t.Error("Error message missing context")
	}
	if !strings.Contains(msg, "underlying error") {
		t.Error("Error message missing cause")
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{
		Errors: []error{
			errors.New("error 1"),
			errors.New("error 2"),
			errors.New("error 3"),
		},
	}

	msg := err.Error()

	if !strings.Contains(msg, "3 errors") {
		t.Error("Error message missing error count")
	}
	if !strings.Contains(msg, "error 1") {
		t.Error("Error message missing first error")
	}
}

func TestSafeMethods_WithConstructorError(t *testing.T) {
	container := New()

	FailingConstructor := func() (*ConsoleLogger, error) {
		return nil, errors.New("constructor failed")
	}

	_ = container.BindConstructor((*Logger)(nil), FailingConstructor)

	logger, err := container.MakeSafe((*Logger)(nil))

	if err == nil {
		t.Error("Expected error from failing constructor")
	}
	if logger != nil {
		t.Error("Expected nil instance")
	}

	if !strings.Contains(err.Error(), "constructor") {
		t.Errorf("Error should mention constructor: %v", err)
	}
}

// Benchmark

func BenchmarkMakeSafe_NoCircular(b *testing.B) {
	container := New()
	_ = container.Bind((*Logger)(nil), &ConsoleLogger{})
	_ = container.Bind((*Database)(nil), &MockDB{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = container.MakeSafe((*Logger)(nil))
	}
}

func BenchmarkMakeSafe_WithDependencies(b *testing.B) {
	container := New()
	_ = container.Bind((*Logger)(nil), &ConsoleLogger{})
	_ = container.Bind((*Database)(nil), &MockDB{})

	_ = container.BindConstructor((*ConstructorService)(nil), NewServiceWithDeps)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = container.MakeSafe((*ConstructorService)(nil))
	}
}

// Additional error type tests for coverage

func TestInvalidBindingError_Error(t *testing.T) {
	err := &InvalidBindingError{Reason: "test reason"}
	msg := err.Error()
	if msg == "" {
		t.Error("InvalidBindingError.Error() should return non-empty string")
	}
}

func TestResolutionError_Unwrap(t *testing.T) {
	innerErr := errors.New("inner error")
	type TestType interface{}
	err := &ResolutionError{
		Type:  reflect.TypeOf((*TestType)(nil)).Elem(),
		Cause: innerErr,
	}

	unwrapped := err.Unwrap()
	if unwrapped != innerErr {
		t.Errorf("ResolutionError.Unwrap() = %v, want %v", unwrapped, innerErr)
	}
}

func TestResolutionError_ErrorMessages(t *testing.T) {
	type TestType interface{}
	tests := []struct {
		name string
		err  *ResolutionError
	}{
		{
			name: "with all fields",
			err: &ResolutionError{
				Type:    reflect.TypeOf((*TestType)(nil)).Elem(),
				Name:    "testName",
				Cause:   errors.New("cause error"),
				Context: "context info",
			},
		},
		{
			name: "with nil type",
			err: &ResolutionError{
				Type:  nil,
				Cause: errors.New("cause error"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			if msg == "" {
				t.Error("ResolutionError.Error() should return non-empty string")
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	errs := []error{
		errors.New("error 1"),
		errors.New("error 2"),
	}
	err := &ValidationError{Errors: errs}

	unwrapped := err.Unwrap()
	if len(unwrapped) != 2 {
		t.Errorf("ValidationError.Unwrap() returned %d errors, want 2", len(unwrapped))
	}
}

func TestValidationError_ErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		errors []error
	}{
		{"multiple errors", []error{errors.New("e1"), errors.New("e2")}},
		{"single error", []error{errors.New("e1")}},
		{"no errors", []error{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ValidationError{Errors: tt.errors}
			msg := err.Error()
			if msg == "" {
				t.Error("ValidationError.Error() should return non-empty string")
			}
		})
	}
}

func TestUnknownParameterError_Error(t *testing.T) {
	err := &UnknownParameterError{
		Type:  reflect.TypeOf(&ConsoleLogger{}),
		Names: []string{"level", "prefix"},
	}
	msg := err.Error()
	if !strings.Contains(msg, "*nasc.ConsoleLogger") || !strings.Contains(msg, "level, prefix") {
		t.Errorf("UnknownParameterError.Error() = %v", msg)
	}
}

func TestResolutionError_MissingConstructorDependency(t *testing.T) {
	container := New()
	_ = container.BindConstructor((*ConstructorService)(nil), NewServiceWithLogger)

	_, err := container.MakeSafe((*ConstructorService)(nil))

	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("Expected ResolutionError, got %T", err)
	}
	if !strings.Contains(err.Error(), "parameter #0") {
		t.Errorf("Error should name the positional parameter: %v", err)
	}
}
