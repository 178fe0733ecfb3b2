package loader

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the encoding of a definitions document.
type Format string

const (
	JSON Format = "json"
	TOML Format = "toml"
	YAML Format = "yaml"
)

func (f Format) String() string {
	return string(f)
}

// ParseFormat returns the Format for a name such as "json" or ".yml".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "json":
		return JSON, nil
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatFromPath infers the Format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no file extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}
