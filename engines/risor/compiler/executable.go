package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	risorLib "github.com/risor-io/risor"
	risorCompiler "github.com/risor-io/risor/compiler"

	"github.com/robbyt/go-polyhelpers/engines/risor/compiler/internal/compile"
	"github.com/robbyt/go-polyhelpers/engines/risor/internal"
	machineTypes "github.com/robbyt/go-polyhelpers/engines/types"
	"github.com/robbyt/go-polyhelpers/internal/helpers"
	"github.com/robbyt/go-polyhelpers/platform/script"
)

// Executable is a compiled Risor helper. The bytecode is immutable, so Call may
// run concurrently; every call gets its own VM.
type Executable struct {
	id         string
	source     string
	parameters []string
	byteCode   *risorCompiler.Code
	globals    map[string]any
	logger     *slog.Logger
}

func newExecutable(
	handler slog.Handler,
	source string,
	parameters []string,
	byteCode *risorCompiler.Code,
	globals map[string]any,
) *Executable {
	if source == "" || byteCode == nil {
		return nil
	}

	id := helpers.ShortID(source)
	_, logger := helpers.SetupLogger(handler, "", "Executable")
	return &Executable{
		id:         id,
		source:     source,
		parameters: parameters,
		byteCode:   byteCode,
		globals:    globals,
		logger:     logger.With("exeID", id),
	}
}

func (e *Executable) String() string {
	return fmt.Sprintf("risor.Executable{ID: %s, Params: %v}", e.id, e.parameters)
}

// Call runs the helper with args bound to its parameters.
func (e *Executable) Call(ctx context.Context, args ...any) (any, error) {
	logger := e.logger.WithGroup("Call")

	bound := internal.BindArgs(len(e.parameters), args)
	opts := internal.ConvertToRisorOptions(compile.ArgsGlobal, bound, e.globals)

	startTime := time.Now()
	result, err := risorLib.EvalCode(ctx, e.byteCode, opts...)
	execTime := time.Since(startTime)
	if err != nil {
		logger.DebugContext(ctx, "exec failed", "error", err, "execTime", execTime)
		return nil, fmt.Errorf("%w: %w", script.ErrExecutionFailed, err)
	}
	logger.DebugContext(ctx, "exec complete", "execTime", execTime)

	return internal.ConvertResult(result)
}

// GetID implements script.Executable.
func (e *Executable) GetID() string {
	return e.id
}

// GetSource implements script.Executable.
func (e *Executable) GetSource() string {
	return e.source
}

// GetParameters implements script.Executable.
func (e *Executable) GetParameters() []string {
	return slices.Clone(e.parameters)
}

// GetRisorByteCode returns the compiled bytecode.
func (e *Executable) GetRisorByteCode() *risorCompiler.Code {
	return e.byteCode
}

// GetMachineType implements script.Executable.
func (e *Executable) GetMachineType() machineTypes.Type {
	return machineTypes.Risor
}
