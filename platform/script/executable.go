package script

import (
	"context"

	machineTypes "github.com/robbyt/go-polyhelpers/engines/types"
)

// Source is the normalised input for compiling one helper: a trimmed name,
// the parsed parameter names in declaration order, and the body text.
type Source struct {
	Name       string
	Parameters []string
	Body       string
}

// Compiler turns a helper Source into an Executable.
// Implementations like [`risor.Compiler`](../../engines/risor/compiler/compiler.go)
// wrap the body in an engine-native function declaration and compile it to bytecode.
type Compiler interface {
	// Compile validates and compiles the source. A rejected body is reported as an
	// error wrapping the engine's validation error; no partial Executable is returned.
	Compile(src Source) (Executable, error)

	// FallbackBody returns the body used when a helper has none. It must evaluate
	// to a false-like value in the engine's language.
	FallbackBody() string

	// GetMachineType returns the engine type this compiler targets.
	GetMachineType() machineTypes.Type
}

// Executable is a compiled helper, ready to be called any number of times.
type Executable interface {
	// Call binds args to the declared parameters in order and runs the helper.
	// Missing arguments are bound to the engine's null value and surplus
	// arguments are ignored. The result is converted to a plain Go value.
	Call(ctx context.Context, args ...any) (any, error)

	// GetID returns a short content hash of the generated source.
	GetID() string

	// GetSource returns the generated engine source, including the wrapper.
	GetSource() string

	// GetParameters returns the parameter names the helper was compiled with.
	GetParameters() []string

	// GetMachineType returns the engine type this helper runs on.
	GetMachineType() machineTypes.Type
}
