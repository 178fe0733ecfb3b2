// Package types enumerates the script engines that can compile helper bodies.
package types

import (
	"fmt"
	"strings"
)

// Type identifies a script engine.
type Type string

const (
	// Risor engine: https://github.com/risor-io/risor
	Risor Type = "risor"
	// Starlark engine: https://github.com/google/starlark-go
	Starlark Type = "starlark"
)

// All returns every supported engine type, default first.
func All() []Type {
	return []Type{Risor, Starlark}
}

func (t Type) String() string {
	return string(t)
}

// Valid reports whether t names a supported engine.
func (t Type) Valid() bool {
	switch t {
	case Risor, Starlark:
		return true
	default:
		return false
	}
}

// Parse converts an engine name into a Type. Matching is case-insensitive.
func Parse(name string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(name)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown engine type %q", name)
	}
	return t, nil
}
