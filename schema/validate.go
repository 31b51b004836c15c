package schema

import (
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/miniyaml"
)

// Sentinel errors returned by [Validate] and [Load].
var (
	ErrInvalidSchema = errors.New("invalid schema")
	ErrValidation    = errors.New("validation failed")
)

// Validate checks v against s. The schema is resolved on every call;
// callers validating many values against one schema should use [Compile].
func Validate(s *jsonschema.Schema, v miniyaml.Value) error {
	c, err := Compile(s)
	if err != nil {
		return err
	}

	return c.Validate(v)
}

// Compiled is a resolved schema ready for repeated validation.
type Compiled struct {
	resolved *jsonschema.Resolved
}

// Compile resolves s for validation.
func Compile(s *jsonschema.Schema) (*Compiled, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrInvalidSchema)
	}

	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	return &Compiled{resolved: resolved}, nil
}

// Validate checks v against the compiled schema.
func (c *Compiled) Validate(v miniyaml.Value) error {
	err := c.resolved.Validate(v.Interface())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}
