package helpers

import (
	"log/slog"
)

// SetupLogger creates a logger for an engine component.
// If the provided handler is nil, records are discarded: compiling and calling
// helpers must not write anywhere unless the caller asks for it.
//
// Parameters:
//   - handler: The slog.Handler to use, or nil to discard
//   - engineName: The name of the script engine (e.g., "starlark", "risor")
//   - groupName: Optional additional group name within the engine
//
// Returns:
//   - The configured handler
//   - A logger created from the handler
func SetupLogger(
	handler slog.Handler,
	engineName string,
	groupName string,
) (slog.Handler, *slog.Logger) {
	if handler == nil {
		handler = slog.DiscardHandler
	}
	if engineName != "" {
		handler = handler.WithGroup(engineName)
	}

	var logger *slog.Logger
	if groupName != "" {
		logger = slog.New(handler.WithGroup(groupName))
	} else {
		logger = slog.New(handler)
	}

	return handler, logger
}
