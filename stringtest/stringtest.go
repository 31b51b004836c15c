// Package stringtest builds expected strings and inline documents for
// tests.
package stringtest

import "strings"

// Input dedents a raw string literal so documents can be written inline in
// test tables at the indentation of the surrounding code.
//
// One leading and one trailing line break are removed, the longest
// whitespace prefix shared by all non-blank lines is stripped, and
// whitespace-only lines become empty.
//
//	doc := stringtest.Input(`
//		name: app
//		tags:
//		  - a
//	`) // -> "name: app\ntags:\n  - a"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	prefix := ""
	first := true

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix = lead
			first = false

			continue
		}

		prefix = commonPrefix(prefix, lead)
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))

	for i := range n {
		if a[i] != b[i] {
			return a[:i]
		}
	}

	return a[:n]
}

// JoinLF joins lines with LF line endings.
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//	) // -> "line1\nline2"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// JoinCRLF joins lines with CRLF line endings.
func JoinCRLF(ss ...string) string {
	return strings.Join(ss, "\r\n")
}
