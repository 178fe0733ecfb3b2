package compiler

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/robbyt/go-polyhelpers/engines/risor/compiler/internal/compile"
	machineTypes "github.com/robbyt/go-polyhelpers/engines/types"
	"github.com/robbyt/go-polyhelpers/platform/script"
)

// FallbackBody is compiled for helpers without a body; it returns false.
const FallbackBody = "return false"

// Compiler compiles helper bodies into Risor bytecode.
type Compiler struct {
	globals    map[string]any
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a new Risor Compiler instance with the provided options.
func New(opts ...FunctionalOption) (*Compiler, error) {
	c := &Compiler{}
	c.applyDefaults()

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("error applying compiler option: %w", err)
		}
	}

	// Logging is always configured; without a handler records are discarded.
	c.setupLogger()

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid compiler configuration: %w", err)
	}

	return c, nil
}

func (c *Compiler) String() string {
	return "risor.Compiler"
}

// FallbackBody implements script.Compiler.
func (c *Compiler) FallbackBody() string {
	return FallbackBody
}

// GetMachineType implements script.Compiler.
func (c *Compiler) GetMachineType() machineTypes.Type {
	return machineTypes.Risor
}

// Compile wraps the helper body in a function declaration and compiles it to bytecode.
func (c *Compiler) Compile(src script.Source) (script.Executable, error) {
	exe, err := c.compile(src)
	if err != nil {
		return nil, err
	}
	return exe, nil
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

	globalNames := append(
		[]string{compile.ArgsGlobal},
		slices.Sorted(maps.Keys(c.globals))...,
	)
	bc, err := compile.CompileWithGlobals(&source, globalNames)
	if err != nil {
		logger.Warn("Compilation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if bc == nil {
		logger.Error("Compilation returned nil bytecode")
		return nil, ErrBytecodeNil
	}

	instructionCount := bc.InstructionCount()
	logger.Debug("Compilation successful", "instructionCount", instructionCount)
	if instructionCount < 1 {
		logger.Warn("Bytecode has zero instructions")
		return nil, ErrNoInstructions
	}

	exe := newExecutable(c.logHandler, source, params, bc, c.globals)
	if exe == nil {
		logger.Warn("Failed to create Executable from bytecode")
		return nil, ErrExecCreationFailed
	}
	return exe, nil
}
