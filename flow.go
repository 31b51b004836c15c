package miniyaml

import "strings"

// parseFlow parses a single-line "[...]" or "{...}" collection.
//
// The closing bracket is the last occurrence of the matching character, so
// trailing text after an unbalanced closer is absorbed into the interior.
// A missing closer makes the rest of the string the interior.
func parseFlow(s string) Value {
	s = strings.TrimSpace(s)

	closer := byte(']')
	if s[0] == '{' {
		closer = '}'
	}

	inner := s[1:]
	if end := strings.LastIndexByte(s, closer); end > 0 {
		inner = s[1:end]
	}

	if s[0] == '[' {
		items := []Value{}
		for _, item := range splitFlowItems(inner) {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}

			items = append(items, resolveFlowValue(item))
		}

		return Sequence(items...)
	}

	m := NewMap()

	for _, item := range splitFlowItems(inner) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		colon := findFlowColon(item)
		if colon < 0 {
			m.Set(unquote(item), Null())

			continue
		}

		key := unquote(strings.TrimSpace(item[:colon]))
		m.Set(key, resolveFlowValue(item[colon+1:]))
	}

	return Mapping(m)
}

// resolveFlowValue resolves one flow item: a nested collection or a scalar.
func resolveFlowValue(s string) Value {
	s = strings.TrimSpace(s)
	if s != "" && (s[0] == '[' || s[0] == '{') {
		return parseFlow(s)
	}

	return resolveScalar(s)
}
