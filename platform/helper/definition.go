// Package helper holds the data model shared by the helper compiler and the
// completion index: user-authored definitions in, compiled helpers and errors out.
package helper

import (
	"strings"
)

// Definition is a user-authored helper, as produced by an editor. It is read-only
// input: absent fields and empty strings are treated the same.
type Definition struct {
	// ID is opaque and only echoed back in compile errors.
	ID any `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`

	// Name may be empty or whitespace-only, in which case the definition is skipped.
	Name string `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`

	// Parameters is a comma separated list of parameter names.
	Parameters string `json:"parameters,omitempty" toml:"parameters,omitempty" yaml:"parameters,omitempty"`

	// Body is the source text of the function body.
	Body string `json:"body,omitempty" toml:"body,omitempty" yaml:"body,omitempty"`
}

// TrimmedName returns the name without surrounding whitespace.
func (d Definition) TrimmedName() string {
	return strings.TrimSpace(d.Name)
}

// Valid reports whether the definition has a usable name.
func (d Definition) Valid() bool {
	return d.TrimmedName() != ""
}

// ParsedParameters returns the parameter names declared by the definition.
func (d Definition) ParsedParameters() []string {
	return ParseParameters(d.Parameters)
}

// TrimmedBody returns the body without surrounding whitespace, or fallback when
// the body is empty.
func (d Definition) TrimmedBody(fallback string) string {
	if body := strings.TrimSpace(d.Body); body != "" {
		return body
	}
	return fallback
}

// ParseParameters splits a comma separated parameter string, trims every token
// and drops empty ones. The result is never nil.
func ParseParameters(raw string) []string {
	params := []string{}
	if raw == "" {
		return params
	}
	for token := range strings.SplitSeq(raw, ",") {
		if p := strings.TrimSpace(token); p != "" {
			params = append(params, p)
		}
	}
	return params
}
