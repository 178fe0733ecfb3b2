package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	starlarkLib "go.starlark.net/starlark"

	"github.com/robbyt/go-polyhelpers/engines/starlark/internal"
	machineTypes "github.com/robbyt/go-polyhelpers/engines/types"
	"github.com/robbyt/go-polyhelpers/internal/helpers"
	"github.com/robbyt/go-polyhelpers/platform/script"
)

// Executable is a compiled Starlark helper. Its globals are frozen and every call
// runs on a new thread, so Call may run concurrently.
type Executable struct {
	id         string
	source     string
	parameters []string
	fn         *starlarkLib.Function
	logger     *slog.Logger
}

func newExecutable(
	handler slog.Handler,
	source string,
	parameters []string,
	fn *starlarkLib.Function,
) *Executable {
	if source == "" || fn == nil {
		return nil
	}

	id := helpers.ShortID(source)
	_, logger := helpers.SetupLogger(handler, "", "Executable")
	return &Executable{
		id:         id,
		source:     source,
		parameters: parameters,
		fn:         fn,
		logger:     logger.With("exeID", id),
	}
}

func (e *Executable) String() string {
	return fmt.Sprintf("starlark.Executable{ID: %s, Params: %v}", e.id, e.parameters)
}

// Call runs the helper with args bound to its parameters. The call is cancelled
// when ctx is done.
func (e *Executable) Call(ctx context.Context, args ...any) (any, error) {
	logger := e.logger.WithGroup("Call")

	bound := make([]any, len(e.parameters))
	copy(bound, args)
	tuple, err := internal.ToStarlarkTuple(bound)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", script.ErrExecutionFailed, err)
	}

	thread := &starlarkLib.Thread{
		Name:  e.id,
		Print: func(_ *starlarkLib.Thread, msg string) { logger.InfoContext(ctx, msg) },
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	startTime := time.Now()
	result, err := starlarkLib.Call(thread, e.fn, tuple, nil)
	execTime := time.Since(startTime)
	if err != nil {
		logger.DebugContext(ctx, "exec failed", "error", err, "execTime", execTime)
		return nil, fmt.Errorf("%w: %w", script.ErrExecutionFailed, err)
	}
	logger.DebugContext(ctx, "exec complete", "execTime", execTime)

	converted, err := internal.ToGoValue(result)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", script.ErrUnsupportedResult, err)
	}
	return converted, nil
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

// GetStarlarkFunction returns the compiled function.
func (e *Executable) GetStarlarkFunction() *starlarkLib.Function {
	return e.fn
}

// GetMachineType implements script.Executable.
func (e *Executable) GetMachineType() machineTypes.Type {
	return machineTypes.Starlark
}
