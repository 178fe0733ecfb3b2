package polyhelpers

import "errors"

var (
	ErrUnknownEngine = errors.New("unknown script engine")
	ErrNilExecutable = errors.New("compiler returned no executable")
)
