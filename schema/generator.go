package schema

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/miniyaml"
)

// draft7 is the $schema URI set on every generated root schema.
const draft7 = "http://json-schema.org/draft-07/schema#"

// Sentinel errors returned by the generator.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidOption = errors.New("invalid option")
)

// Generator produces JSON Schema from documents in the supported subset.
type Generator struct {
	title       string
	description string
	id          string
	strict      bool
	required    bool
	defaults    bool
}

// Option configures a Generator.
type Option func(*Generator)

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// WithTitle sets the schema title.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithDescription sets the schema description.
func WithDescription(desc string) Option {
	return func(g *Generator) {
		g.description = desc
	}
}

// WithID sets the schema $id.
func WithID(id string) Option {
	return func(g *Generator) {
		g.id = id
	}
}

// WithStrict sets additionalProperties to false on objects.
func WithStrict(strict bool) Option {
	return func(g *Generator) {
		g.strict = strict
	}
}

// WithRequired marks every key seen in a mapping as required. Across
// multiple inputs a key stays required only if every input has it.
func WithRequired(required bool) Option {
	return func(g *Generator) {
		g.required = required
	}
}

// WithDefaults records each non-null scalar as the default of its
// property. When inputs disagree, the first input wins.
func WithDefaults(defaults bool) Option {
	return func(g *Generator) {
		g.defaults = defaults
	}
}

// Generate produces a JSON Schema from one or more documents.
// Each input is a byte slice of document text.
func (g *Generator) Generate(inputs ...[]byte) (*jsonschema.Schema, error) {
	var result *jsonschema.Schema

	for i, input := range inputs {
		s := g.emptySchema()

		if !isBlank(input) {
			v, err := miniyaml.ParseBytes(input)
			if err != nil {
				return nil, fmt.Errorf("input %d: %w: %w", i, ErrInvalidInput, err)
			}

			slog.Debug("parsed input",
				slog.Int("index", i),
				slog.String("kind", v.Kind().String()),
			)

			s = g.walk(v)
		}

		result = mergeSchemas(result, s)
	}

	return g.finish(result), nil
}

// GenerateValues produces a JSON Schema from already parsed values.
func (g *Generator) GenerateValues(values ...miniyaml.Value) *jsonschema.Schema {
	var result *jsonschema.Schema

	for _, v := range values {
		result = mergeSchemas(result, g.walk(v))
	}

	return g.finish(result)
}

// finish applies root-level settings to the merged schema.
func (g *Generator) finish(result *jsonschema.Schema) *jsonschema.Schema {
	if result == nil {
		result = g.emptySchema()
	}

	result.Schema = draft7

	if g.title != "" {
		result.Title = g.title
	}

	if g.description != "" {
		result.Description = g.description
	}

	if g.id != "" {
		result.ID = g.id
	}

	// Set additionalProperties on the root object.
	if (isObjectSchema(result) || result.Properties != nil) && result.AdditionalProperties == nil {
		result.AdditionalProperties = g.additionalProperties()
	}

	return result
}

// walk recursively generates a schema from a parsed value.
func (g *Generator) walk(v miniyaml.Value) *jsonschema.Schema {
	switch v.Kind() {
	case miniyaml.KindMapping:
		m, _ := v.AsMap()

		return g.walkMapping(m)
	case miniyaml.KindSequence:
		items, _ := v.AsSlice()

		return &jsonschema.Schema{
			Type:  typeArray,
			Items: g.inferItems(items),
		}
	default:
		return g.walkScalar(v)
	}
}

// walkMapping processes a mapping into an object schema.
func (g *Generator) walkMapping(m *miniyaml.Map) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:                 typeObject,
		Properties:           make(map[string]*jsonschema.Schema, m.Len()),
		AdditionalProperties: g.additionalProperties(),
	}

	for key, child := range m.All() {
		schema.Properties[key] = g.walk(child)
		schema.PropertyOrder = append(schema.PropertyOrder, key)

		if g.required {
			schema.Required = append(schema.Required, key)
		}
	}

	if len(schema.Properties) == 0 {
		schema.Properties = nil
		schema.PropertyOrder = nil
	}

	return schema
}

// inferItems infers the items schema from sequence elements.
func (g *Generator) inferItems(items []miniyaml.Value) *jsonschema.Schema {
	if len(items) == 0 {
		return nil
	}

	for _, item := range items {
		if item.Kind() != miniyaml.KindMapping && item.Kind() != miniyaml.KindSequence {
			// For scalar and mixed arrays, just use type inference.
			return inferItemsSchema(items)
		}
	}

	var result *jsonschema.Schema

	for _, item := range items {
		result = mergeSchemas(result, g.walk(item))
	}

	return result
}

// walkScalar generates a schema for a scalar value.
func (g *Generator) walkScalar(v miniyaml.Value) *jsonschema.Schema {
	t := inferType(v)
	if t == "" {
		return &jsonschema.Schema{}
	}

	schema := &jsonschema.Schema{Type: t}

	if g.defaults {
		schema.Default = DefaultValue(v)
	}

	return schema
}

func (g *Generator) additionalProperties() *jsonschema.Schema {
	if g.strict {
		return FalseSchema()
	}

	return TrueSchema()
}

// emptySchema returns a schema for empty input (validates everything).
func (g *Generator) emptySchema() *jsonschema.Schema {
	return &jsonschema.Schema{}
}

// isBlank returns true if the byte slice contains only whitespace.
func isBlank(data []byte) bool {
	for _, b := range data {
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			return false
		}
	}

	return true
}
