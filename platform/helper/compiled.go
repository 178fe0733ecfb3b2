package helper

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Func is a compiled helper. Arguments are bound to the declared parameters in order.
// Go booleans, numbers, strings, slices and string-keyed maps work with every
// engine. Support for other argument types, such as structs, differs by engine.
type Func func(ctx context.Context, args ...any) (any, error)

// CompiledSet is the result of compiling a list of definitions.
type CompiledSet struct {
	// Helpers maps a trimmed helper name to its compiled function.
	// When names collide the later definition wins.
	Helpers map[string]Func
	// Errors holds one entry per rejected definition, in input order.
	Errors []CompileError
}

// NewCompiledSet returns an empty set.
func NewCompiledSet() *CompiledSet {
	return &CompiledSet{
		Helpers: make(map[string]Func),
		Errors:  []CompileError{},
	}
}

// Add stores fn under name, replacing any earlier helper with that name.
func (s *CompiledSet) Add(name string, fn Func) {
	s.Helpers[name] = fn
}

// AddError appends a compile error.
func (s *CompiledSet) AddError(ce CompileError) {
	s.Errors = append(s.Errors, ce)
}

// Get returns the helper registered under name.
func (s *CompiledSet) Get(name string) (Func, bool) {
	fn, ok := s.Helpers[name]
	return fn, ok
}

// Call invokes the helper registered under name.
func (s *CompiledSet) Call(ctx context.Context, name string, args ...any) (any, error) {
	fn, ok := s.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrHelperNotFound, name)
	}
	return fn(ctx, args...)
}

// Names returns the helper names in sorted order.
func (s *CompiledSet) Names() []string {
	return slices.Sorted(maps.Keys(s.Helpers))
}

// Len returns the number of compiled helpers.
func (s *CompiledSet) Len() int {
	return len(s.Helpers)
}

// HasErrors reports whether any definition failed to compile.
func (s *CompiledSet) HasErrors() bool {
	return len(s.Errors) > 0
}

// Err joins all compile errors into one error, or returns nil.
func (s *CompiledSet) Err() error {
	if !s.HasErrors() {
		return nil
	}
	errz := make([]error, 0, len(s.Errors))
	for _, ce := range s.Errors {
		errz = append(errz, ce)
	}
	return errors.Join(errz...)
}
