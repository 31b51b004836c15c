// Package schema infers JSON Schema (Draft 7) from documents parsed by
// [miniyaml.Parse], and validates parsed documents against a schema.
//
// The generated schemas fail open: a document is treated as one example of
// its configuration, never as a complete description of it.
//
// # Inference
//
// [Generator.Generate] parses each input and walks the resulting
// [miniyaml.Value] tree:
//
//   - Booleans, strings and numbers map to their JSON Schema types. A
//     number with no fractional part is an "integer", otherwise "number".
//   - Null values emit no type constraint.
//   - Mappings become objects whose properties keep document order.
//     additionalProperties is true unless [WithStrict] is set.
//   - Sequences become arrays. When every element is a mapping or a
//     sequence the element schemas are merged; otherwise the scalar types
//     are widened into a single items type, or dropped if incompatible.
//
// Inputs containing anchors, aliases, tags or merge keys are rejected with
// [ErrInvalidInput] wrapping the parser's [miniyaml.UnsupportedSyntaxError].
//
// # Merging
//
// Multiple inputs are merged with union semantics. Properties are unioned.
// Conflicting types widen: integer and number become number, and anything
// else drops the type constraint. Required is intersected, so with
// [WithRequired] a key is required only if every input has it.
// additionalProperties is merged fail-open.
//
// # Validation
//
// [Validate] and [Compiled.Validate] check a parsed value against a schema
// using [github.com/google/jsonschema-go/jsonschema]. Schemas that fail to
// resolve are reported as [ErrInvalidSchema]; values that do not conform
// are reported as [ErrValidation].
package schema
