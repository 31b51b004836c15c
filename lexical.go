package miniyaml

import (
	"strconv"
	"strings"
)

// eachUnquoted calls fn with the index of every byte of s that lies outside
// a quoted region. Quote delimiters are not reported. Iteration stops when
// fn returns false.
//
// A quote only opens at the start of s or after whitespace or one of "[{,:",
// so apostrophes inside plain words ("don't") are ordinary characters.
// Structural characters are ASCII, so scanning bytes of UTF-8 input is safe.
func eachUnquoted(s string, fn func(i int) bool) {
	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			switch {
			case quote == '"' && c == '\\':
				i++
			case c == quote && quote == '\'' && i+1 < len(s) && s[i+1] == '\'':
				i++
			case c == quote:
				quote = 0
			}

			continue
		}

		if (c == '"' || c == '\'') && opensQuote(s, i) {
			quote = c

			continue
		}

		if !fn(i) {
			return
		}
	}
}

func opensQuote(s string, i int) bool {
	if i == 0 {
		return true
	}

	switch s[i-1] {
	case ' ', '\t', '[', '{', ',', ':':
		return true
	}

	return false
}

// findKeyColon returns the index of the first unquoted colon that is
// followed by whitespace or the end of s, or -1. Colons inside values such
// as "12:30" or "http://host" do not qualify.
func findKeyColon(s string) int {
	idx := -1

	eachUnquoted(s, func(i int) bool {
		if s[i] != ':' {
			return true
		}

		if i+1 == len(s) || s[i+1] == ' ' || s[i+1] == '\t' {
			idx = i

			return false
		}

		return true
	})

	return idx
}

// findFlowColon returns the index of the first unquoted colon in s, or -1.
func findFlowColon(s string) int {
	idx := -1

	eachUnquoted(s, func(i int) bool {
		if s[i] == ':' {
			idx = i

			return false
		}

		return true
	})

	return idx
}

// stripInlineComment cuts s at the first unquoted "#" that starts the line
// or follows whitespace.
func stripInlineComment(s string) string {
	cut := len(s)

	eachUnquoted(s, func(i int) bool {
		if s[i] == '#' && (i == 0 || s[i-1] == ' ' || s[i-1] == '\t') {
			cut = i

			return false
		}

		return true
	})

	return s[:cut]
}

// splitFlowItems splits the interior of a flow collection on top-level
// commas. Brackets nested at any depth and quoted commas do not split.
func splitFlowItems(s string) []string {
	var (
		items []string
		depth int
		start int
	)

	eachUnquoted(s, func(i int) bool {
		switch s[i] {
		case '[', '{':
			depth++
		case ']', '}':
			depth--
		case ',':
			if depth == 0 {
				items = append(items, s[start:i])
				start = i + 1
			}
		}

		return true
	})

	return append(items, s[start:])
}

// isQuoted reports whether s is exactly one quoted token.
func isQuoted(s string) bool {
	if len(s) < 2 || (s[0] != '"' && s[0] != '\'') {
		return false
	}

	quote := s[0]

	for i := 1; i < len(s); i++ {
		switch {
		case quote == '"' && s[i] == '\\':
			i++
		case s[i] == quote && quote == '\'' && i+1 < len(s) && s[i+1] == '\'':
			i++
		case s[i] == quote:
			return i == len(s)-1
		}
	}

	return false
}

// unquote returns the text of a quoted token, or s unchanged when s is not
// quoted. Double-quoted text has its escapes decoded when they are valid;
// single-quoted text collapses "''" to "'".
func unquote(s string) string {
	if !isQuoted(s) {
		return s
	}

	inner := s[1 : len(s)-1]

	if s[0] == '\'' {
		return strings.ReplaceAll(inner, "''", "'")
	}

	if !strings.Contains(inner, `\`) {
		return inner
	}

	decoded, err := strconv.Unquote(s)
	if err != nil {
		return inner
	}

	return decoded
}

// isSeqMarker reports whether content starts a sequence item.
func isSeqMarker(content string) bool {
	if content == "-" {
		return true
	}

	return strings.HasPrefix(content, "- ") || strings.HasPrefix(content, "-\t")
}

// indentOf returns the number of leading spaces and tabs in s.
func indentOf(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}

// isBlank reports whether s holds only whitespace.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
