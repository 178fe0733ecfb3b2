// Package starlark compiles helper bodies with the Starlark engine.
// Helper bodies are Starlark def bodies, e.g. "return a + b".
package starlark

import (
	"github.com/robbyt/go-polyhelpers/engines/starlark/compiler"
)

// NewCompiler creates a new Starlark compiler using the functional options pattern.
// Returns a compiler implementing the script.Compiler interface.
func NewCompiler(opts ...compiler.FunctionalOption) (*compiler.Compiler, error) {
	return compiler.New(opts...)
}
