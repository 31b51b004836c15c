package schema

import (
	"math"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/miniyaml"
)

// JSON Schema type constants.
const (
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

// inferType returns the JSON Schema type string for v.
// Returns an empty string for null (maximally permissive).
func inferType(v miniyaml.Value) string {
	switch v.Kind() {
	case miniyaml.KindBool:
		return typeBoolean
	case miniyaml.KindNumber:
		f, _ := v.AsNumber()
		if isWhole(f) {
			return typeInteger
		}

		return typeNumber
	case miniyaml.KindString:
		return typeString
	case miniyaml.KindSequence:
		return typeArray
	case miniyaml.KindMapping:
		return typeObject
	case miniyaml.KindNull:
		return ""
	}

	return ""
}

// isWhole reports whether f holds an integral value that survives a round
// trip through int64.
func isWhole(f float64) bool {
	return f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64
}

// inferItemsSchema creates an items schema from scalar sequence elements.
// Mixed types are widened. Returns nil for empty sequences or when no
// common type exists.
func inferItemsSchema(items []miniyaml.Value) *jsonschema.Schema {
	if len(items) == 0 {
		return nil
	}

	resultType := inferType(items[0])

	for _, item := range items[1:] {
		resultType = widenType(resultType, inferType(item))
	}

	if resultType == "" {
		return nil
	}

	return &jsonschema.Schema{Type: resultType}
}

// widenType returns the widened type when merging two type strings.
// Returns empty string (no constraint) for incompatible types.
func widenType(a, b string) string {
	if a == b {
		return a
	}

	// Null merges transparently.
	if a == "" {
		return b
	}

	if b == "" {
		return a
	}

	if (a == typeInteger && b == typeNumber) || (a == typeNumber && b == typeInteger) {
		return typeNumber
	}

	return ""
}

// schemaType returns the effective type string of s.
func schemaType(s *jsonschema.Schema) string {
	if s.Type != "" {
		return s.Type
	}

	if len(s.Types) == 1 {
		return s.Types[0]
	}

	return ""
}

func isObjectSchema(s *jsonschema.Schema) bool {
	return s.Type == typeObject || slices.Contains(s.Types, typeObject)
}
