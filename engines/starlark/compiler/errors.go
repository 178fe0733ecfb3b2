package compiler

import "errors"

var (
	ErrExecCreationFailed = errors.New("unable to create starlark executable")
	ErrValidationFailed   = errors.New("starlark helper validation error")
)
