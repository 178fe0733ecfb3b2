package compiler

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/robbyt/go-polyhelpers/engines/risor/compiler/internal/compile"
	"github.com/robbyt/go-polyhelpers/internal/helpers"
)

// FunctionalOption is a function that configures a Compiler instance
type FunctionalOption func(*Compiler) error

// WithGlobals makes the given values readable by name from every helper body.
// The names are declared at compile time and the values are bound on each call.
func WithGlobals(globals map[string]any) FunctionalOption {
	return func(c *Compiler) error {
		if _, ok := globals[compile.ArgsGlobal]; ok {
			return fmt.Errorf("global %q is reserved", compile.ArgsGlobal)
		}
		if c.globals == nil {
			c.globals = make(map[string]any, len(globals))
		}
		maps.Copy(c.globals, globals)
		return nil
	}
}

// WithLogHandler creates an option to set the log handler for the Risor compiler.
// This is the preferred option for logging configuration as it provides
// more flexibility through the slog.Handler interface.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(c *Compiler) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		c.logHandler = handler
		// Clear logger if handler is explicitly set
		c.logger = nil
		return nil
	}
}

// WithLogger creates an option to set a specific logger for the Risor compiler.
// This is less flexible than WithLogHandler but allows users to customize
// their logging group configuration.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(c *Compiler) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		// Clear handler if logger is explicitly set
		c.logHandler = nil
		return nil
	}
}

// setupLogger configures the logger and handler based on the current state.
func (c *Compiler) setupLogger() {
	if c.logger != nil {
		c.logHandler = c.logger.Handler()
	} else {
		c.logHandler, c.logger = helpers.SetupLogger(c.logHandler, "risor", "Compiler")
	}
}

// applyDefaults sets the default values for a compiler
func (c *Compiler) applyDefaults() {
	if c.globals == nil {
		c.globals = map[string]any{}
	}
}

// validate checks if the compiler configuration is valid
func (c *Compiler) validate() error {
	if c.logHandler == nil && c.logger == nil {
		return fmt.Errorf("either log handler or logger must be specified")
	}
	return nil
}
