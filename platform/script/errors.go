package script

import "errors"

var (
	ErrExecutionFailed   = errors.New("helper execution failed")
	ErrUnsupportedResult = errors.New("helper returned an unsupported value")
)
