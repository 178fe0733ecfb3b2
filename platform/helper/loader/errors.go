package loader

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported definitions format")
	ErrDecodeFailed      = errors.New("failed to decode definitions")
)
