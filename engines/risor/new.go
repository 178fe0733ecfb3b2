// Package risor compiles helper bodies with the Risor engine.
// Helper bodies are Risor function bodies, e.g. "return a + b".
package risor

import (
	"github.com/robbyt/go-polyhelpers/engines/risor/compiler"
)

// NewCompiler creates a new Risor compiler using the functional options pattern.
// Returns a compiler implementing the script.Compiler interface.
func NewCompiler(opts ...compiler.FunctionalOption) (*compiler.Compiler, error) {
	return compiler.New(opts...)
}
