package polyhelpers

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/robbyt/go-polyhelpers/engines/types"
	"github.com/robbyt/go-polyhelpers/platform/script"
)

// Option configures a HelperCompiler.
type Option func(*config) error

type config struct {
	engine     types.Type
	compiler   script.Compiler
	globals    map[string]any
	logHandler slog.Handler
	logger     *slog.Logger
}

// WithEngine selects the script engine used to compile helper bodies.
func WithEngine(engine types.Type) Option {
	return func(cfg *config) error {
		if !engine.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
		}
		cfg.engine = engine
		return nil
	}
}

// WithCompiler uses the given compiler instead of building one for the engine.
// WithEngine and WithGlobals have no effect when a compiler is supplied.
func WithCompiler(compiler script.Compiler) Option {
	return func(cfg *config) error {
		if compiler == nil {
			return fmt.Errorf("compiler cannot be nil")
		}
		cfg.compiler = compiler
		return nil
	}
}

// WithGlobals makes the given values readable by name from every helper body.
func WithGlobals(globals map[string]any) Option {
	return func(cfg *config) error {
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(globals))
		}
		maps.Copy(cfg.globals, globals)
		return nil
	}
}

// WithLogHandler sets the log handler used by the helper compiler and the engine.
func WithLogHandler(handler slog.Handler) Option {
	return func(cfg *config) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		cfg.logHandler = handler
		cfg.logger = nil
		return nil
	}
}

// WithLogger sets the logger used by the helper compiler and the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		cfg.logger = logger
		cfg.logHandler = nil
		return nil
	}
}

func defaultConfig() *config {
	return &config{
		engine: types.Risor,
	}
}

// handler returns the configured handler, or nil when logging is disabled.
func (cfg *config) handler() slog.Handler {
	if cfg.logger != nil {
		return cfg.logger.Handler()
	}
	return cfg.logHandler
}
