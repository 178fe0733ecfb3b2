package compile

import "errors"

var (
	ErrCompileFailed = errors.New("failed to compile starlark helper")
	ErrContentNil    = errors.New("starlark content is nil")
	ErrNoEntryPoint  = errors.New("starlark helper did not define its entry point")
)
