// Package polyhelpers compiles user-authored helper definitions into callable
// functions and builds autocompletion entries for their names.
//
// A helper definition is a name, a comma separated parameter list and a body.
// Bodies are compiled once by an embedded script engine (Risor by default, or
// Starlark) and the resulting functions can be called any number of times:
//
//	set := polyhelpers.CompileHelperDefinitions([]helper.Definition{
//		{ID: 1, Name: "add", Parameters: "a,b", Body: "return a+b;"},
//	})
//	sum, err := set.Call(ctx, "add", 2, 3) // int64(5)
//
// A definition whose body does not compile never stops the others; it is
// reported in CompiledSet.Errors instead.
package polyhelpers

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-polyhelpers/engines/risor"
	risorCompiler "github.com/robbyt/go-polyhelpers/engines/risor/compiler"
	"github.com/robbyt/go-polyhelpers/engines/starlark"
	starlarkCompiler "github.com/robbyt/go-polyhelpers/engines/starlark/compiler"
	"github.com/robbyt/go-polyhelpers/engines/types"
	"github.com/robbyt/go-polyhelpers/internal/helpers"
	"github.com/robbyt/go-polyhelpers/platform/completion"
	"github.com/robbyt/go-polyhelpers/platform/helper"
	"github.com/robbyt/go-polyhelpers/platform/script"
)

// HelperCompiler compiles definition lists with one configured engine.
// It keeps no state between calls and is safe for concurrent use.
type HelperCompiler struct {
	compiler script.Compiler
	logger   *slog.Logger
}

// NewHelperCompiler creates a HelperCompiler. Without options it compiles with Risor
// and discards log records.
func NewHelperCompiler(opts ...Option) (*HelperCompiler, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}

	compiler := cfg.compiler
	if compiler == nil {
		var err error
		compiler, err = newEngineCompiler(cfg)
		if err != nil {
			return nil, err
		}
	}

	var logger *slog.Logger
	if cfg.logger != nil {
		logger = cfg.logger.WithGroup("HelperCompiler")
	} else {
		_, logger = helpers.SetupLogger(cfg.logHandler, "", "HelperCompiler")
	}

	return &HelperCompiler{
		compiler: compiler,
		logger:   logger,
	}, nil
}

func newEngineCompiler(cfg *config) (script.Compiler, error) {
	handler := cfg.handler()

	switch cfg.engine {
	case types.Risor:
		opts := []risorCompiler.FunctionalOption{risorCompiler.WithGlobals(cfg.globals)}
		if handler != nil {
			opts = append(opts, risorCompiler.WithLogHandler(handler))
		}
		c, err := risor.NewCompiler(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create risor compiler: %w", err)
		}
		return c, nil
	case types.Starlark:
		opts := []starlarkCompiler.FunctionalOption{starlarkCompiler.WithGlobals(cfg.globals)}
		if handler != nil {
			opts = append(opts, starlarkCompiler.WithLogHandler(handler))
		}
		c, err := starlark.NewCompiler(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create starlark compiler: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, cfg.engine)
	}
}

func (h *HelperCompiler) String() string {
	return fmt.Sprintf("polyhelpers.HelperCompiler{Engine: %s}", h.Engine())
}

// Engine returns the engine type helper bodies are compiled with.
func (h *HelperCompiler) Engine() types.Type {
	return h.compiler.GetMachineType()
}

// Compile compiles every named definition, in input order. Definitions without a
// name are skipped. A definition that fails to compile is recorded in the returned
// set's Errors and does not affect the others. When two definitions share a name,
// the later one wins.
func (h *HelperCompiler) Compile(defs []helper.Definition) *helper.CompiledSet {
	logger := h.logger.WithGroup("Compile")
	set := helper.NewCompiledSet()
	fallback := h.compiler.FallbackBody()

	for i, def := range defs {
		if !def.Valid() {
			logger.Debug("Skipping definition without a name", "index", i, "id", def.ID)
			continue
		}
		name := def.TrimmedName()

		src := script.Source{
			Name:       name,
			Parameters: def.ParsedParameters(),
			Body:       def.TrimmedBody(fallback),
		}

		exe, err := h.compiler.Compile(src)
		if err == nil && exe == nil {
			err = ErrNilExecutable
		}
		if err != nil {
			logger.Warn("Helper rejected", "name", name, "id", def.ID, "error", err)
			set.AddError(helper.NewCompileError(def, err))
			continue
		}

		if _, exists := set.Get(name); exists {
			logger.Debug("Replacing helper with a later definition", "name", name, "id", def.ID)
		}
		set.Add(name, exe.Call)
	}

	logger.Debug("Compiled helpers", "helpers", set.Len(), "errors", len(set.Errors))
	return set
}

// CompileHelperDefinitions compiles defs with the default configuration: the
// Risor engine, no extra globals and no logging.
func CompileHelperDefinitions(defs []helper.Definition) *helper.CompiledSet {
	hc, err := NewHelperCompiler()
	if err != nil {
		// The default configuration has no option that can fail.
		panic(fmt.Sprintf("polyhelpers: default configuration: %v", err))
	}
	return hc.Compile(defs)
}

// GetHelperCompletionEntries returns the de-duplicated autocompletion entries for
// the named definitions: each name and the name followed by "(", or only the name
// when it already ends with "(".
func GetHelperCompletionEntries(defs []helper.Definition) []string {
	return completion.Entries(defs)
}
