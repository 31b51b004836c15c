package schema

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/miniyaml"
)

// DefaultValue converts a parsed value to a [json.RawMessage] suitable for
// use as a JSON Schema default value. Returns nil if marshaling fails.
func DefaultValue(v miniyaml.Value) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	return b
}

// TrueSchema returns a schema that validates everything (marshals to JSON true).
func TrueSchema() *jsonschema.Schema {
	return &jsonschema.Schema{}
}

// FalseSchema returns a schema that validates nothing (marshals to JSON false).
func FalseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}

// Load decodes a JSON Schema document.
func Load(data []byte) (*jsonschema.Schema, error) {
	var s jsonschema.Schema

	err := json.Unmarshal(data, &s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	return &s, nil
}
