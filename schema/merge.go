package schema

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// mergeSchemas merges two schemas using union semantics.
// Properties from both schemas are included. Conflicting types are widened.
func mergeSchemas(a, b *jsonschema.Schema) *jsonschema.Schema {
	if a == nil {
		return b
	}

	if b == nil {
		return a
	}

	result := &jsonschema.Schema{}

	if merged := widenType(schemaType(a), schemaType(b)); merged != "" {
		result.Type = merged
	}

	// Metadata prefers a.
	result.Title = firstNonEmpty(a.Title, b.Title)
	result.Description = firstNonEmpty(a.Description, b.Description)

	if a.Default != nil {
		result.Default = a.Default
	} else {
		result.Default = b.Default
	}

	if a.Properties != nil || b.Properties != nil {
		mergeProperties(result, a, b)
	}

	result.AdditionalProperties = mergeAdditionalProperties(a.AdditionalProperties, b.AdditionalProperties)
	result.Required = intersectStrings(a.Required, b.Required)

	switch {
	case a.Items != nil && b.Items != nil:
		result.Items = mergeSchemas(a.Items, b.Items)
	case a.Items != nil:
		result.Items = a.Items
	default:
		result.Items = b.Items
	}

	return result
}

// mergeAdditionalProperties is fail-open: if either side allows additional
// properties, so does the result. Nil (unset) allows everything.
func mergeAdditionalProperties(a, b *jsonschema.Schema) *jsonschema.Schema {
	if a == nil && b == nil {
		return nil
	}

	if a == nil || b == nil || isTrueSchema(a) || isTrueSchema(b) {
		return TrueSchema()
	}

	return a
}

// isTrueSchema checks if a schema is the "true" schema (validates everything).
func isTrueSchema(s *jsonschema.Schema) bool {
	if s == nil {
		return false
	}

	return s.Not == nil &&
		s.Type == "" &&
		len(s.Types) == 0 &&
		s.Properties == nil &&
		s.Items == nil &&
		len(s.AllOf) == 0 &&
		len(s.AnyOf) == 0 &&
		len(s.OneOf) == 0
}

// intersectStrings returns the elements of b that are also in a, in b's
// order. Nil when either side is nil or nothing is shared.
func intersectStrings(a, b []string) []string {
	if a == nil || b == nil {
		return nil
	}

	set := make(map[string]bool, len(a))
	for _, s := range a {
		set[s] = true
	}

	var result []string

	for _, s := range b {
		if set[s] {
			result = append(result, s)
		}
	}

	return result
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}

	return b
}

// propertyKeys returns property keys in PropertyOrder, then any remaining
// keys in an undefined order.
func propertyKeys(s *jsonschema.Schema) []string {
	if s.Properties == nil {
		return nil
	}

	seen := make(map[string]bool, len(s.PropertyOrder))
	keys := make([]string, 0, len(s.Properties))

	for _, k := range s.PropertyOrder {
		if _, ok := s.Properties[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	for k := range s.Properties {
		if !seen[k] {
			keys = append(keys, k)
		}
	}

	return keys
}

// mergeProperties unions the properties of a and b into result, keeping
// a's order first and appending keys only b has.
func mergeProperties(result, a, b *jsonschema.Schema) {
	result.Properties = make(map[string]*jsonschema.Schema)

	var order []string

	for _, k := range propertyKeys(a) {
		result.Properties[k] = a.Properties[k]
		order = append(order, k)
	}

	for _, k := range propertyKeys(b) {
		if existing, ok := result.Properties[k]; ok {
			result.Properties[k] = mergeSchemas(existing, b.Properties[k])

			continue
		}

		result.Properties[k] = b.Properties[k]
		order = append(order, k)
	}

	result.PropertyOrder = order
}
