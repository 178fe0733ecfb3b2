package compiler

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	starlarkLib "go.starlark.net/starlark"

	"github.com/robbyt/go-polyhelpers/engines/starlark/compiler/internal/compile"
	"github.com/robbyt/go-polyhelpers/engines/starlark/internal"
	machineTypes "github.com/robbyt/go-polyhelpers/engines/types"
	"github.com/robbyt/go-polyhelpers/platform/script"
)

// FallbackBody is compiled for helpers without a body; it returns False.
const FallbackBody = "return False"

// Compiler compiles helper bodies into Starlark functions.
type Compiler struct {
	globals    map[string]any
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a new Starlark Compiler instance with the provided options.
func New(opts ...FunctionalOption) (*Compiler, error) {
	c := &Compiler{}
	c.applyDefaults()

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("error applying compiler option: %w", err)
		}
	}

	c.setupLogger()

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid compiler configuration: %w", err)
	}

	return c, nil
}

func (c *Compiler) String() string {
	return "starlark.Compiler"
}

// FallbackBody implements script.Compiler.
func (c *Compiler) FallbackBody() string {
	return FallbackBody
}

// GetMachineType implements script.Compiler.
func (c *Compiler) GetMachineType() machineTypes.Type {
	return machineTypes.Starlark
}

// Compile wraps the helper body in a def and resolves it against the standard modules.
func (c *Compiler) Compile(src script.Source) (script.Executable, error) {
	exe, err := c.compile(src)
	if err != nil {
		return nil, err
	}
	return exe, nil
}

func (c *Compiler) predeclared() (starlarkLib.StringDict, error) {
	return internal.ToStarlarkStringDict(c.globals)
}

func (c *Compiler) compile(src script.Source) (*Executable, error) {
	logger := c.logger.WithGroup("compile").With("helper", src.Name)

	body := strings.TrimSpace(src.Body)
	if body == "" {
		body = FallbackBody
	}
	params := slices.Clone(src.Parameters)
	if params == nil {
		params = []string{}
	}

	source := compile.WrapSource(params, body)
	logger.Debug("Starting validation", "source", source, "params", params)

	globals, err := c.predeclared()
	if err != nil {
		logger.Error("Failed to convert globals", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	filename := src.Name + ".star"
	fn, err := compile.CompileFunction(filename, source, globals)
	if err != nil {
		logger.Warn("Compilation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	logger.Debug("Compilation successful", "numParams", fn.NumParams())

	exe := newExecutable(c.logHandler, source, params, fn)
	if exe == nil {
		logger.Warn("Failed to create Executable from function")
		return nil, ErrExecCreationFailed
	}
	return exe, nil
}
