// Package loader decodes helper definition lists from JSON, TOML or YAML.
//
// JSON and YAML documents may be a bare list of definitions or an object with
// a "helpers" key holding the list. TOML documents use an array of tables:
//
//	[[helpers]]
//	id = 1
//	name = "add"
//	parameters = "a,b"
//	body = "return a+b"
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/robbyt/go-polyhelpers/platform/helper"
)

// document is the keyed form shared by all three formats.
type document struct {
	Helpers []helper.Definition `json:"helpers" toml:"helpers" yaml:"helpers"`
}

// FromBytes decodes a definitions document. An empty or whitespace-only
// document yields an empty list.
func FromBytes(data []byte, format Format) ([]helper.Definition, error) {
	var (
		defs []helper.Definition
		err  error
	)
	switch format {
	case JSON:
		defs, err = decodeJSON(data)
	case TOML:
		defs, err = decodeTOML(data)
	case YAML:
		defs, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailed, format, err)
	}
	if defs == nil {
		defs = []helper.Definition{}
	}
	return defs, nil
}

// FromReader reads r to the end and decodes it with FromBytes.
func FromReader(r io.Reader, format Format) ([]helper.Definition, error) {
	if r == nil {
		return nil, fmt.Errorf("reader cannot be nil")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions: %w", err)
	}
	return FromBytes(data, format)
}

// FromDisk decodes the file at path, inferring the format from its extension.
func FromDisk(path string) ([]helper.Definition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defs, err := FromBytes(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

func decodeJSON(data []byte) ([]helper.Definition, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var defs []helper.Definition
		if err := json.Unmarshal(data, &defs); err != nil {
			return nil, err
		}
		return defs, nil
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Helpers, nil
}

func decodeTOML(data []byte) ([]helper.Definition, error) {
	var doc document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, err
	}
	return doc.Helpers, nil
}

func decodeYAML(data []byte) ([]helper.Definition, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	// An empty document decodes to a zero node.
	if node.Kind == 0 || len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var defs []helper.Definition
		if err := root.Decode(&defs); err != nil {
			return nil, err
		}
		return defs, nil
	case yaml.MappingNode:
		var doc document
		if err := root.Decode(&doc); err != nil {
			return nil, err
		}
		return doc.Helpers, nil
	default:
		return nil, fmt.Errorf("line %d: expected a list of helpers or a helpers key", root.Line)
	}
}
