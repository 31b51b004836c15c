// Package scan extracts values from small registry files of a known shape
// without parsing them.
//
// The scanners are line oriented and only understand comments, quoting and
// sequence dashes. Use [miniyaml.Parse] for anything with structure beyond
// a flat list.
package scan

import (
	"strconv"
	"strings"
)

// StripComments removes full-line and trailing comments from text. A "#"
// starts a comment only at the beginning of a line or after whitespace,
// and never inside quotes. Lines left blank are dropped and each remaining
// line ends with "\n".
func StripComments(text string) string {
	var b strings.Builder

	for _, line := range lines(text) {
		line = strings.TrimRight(stripComment(line), " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}

		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}

// ListField returns the values of every "field: value" line in text, at any
// depth and with or without a leading sequence dash. Values are unquoted.
// Lines where field has no inline value are skipped.
func ListField(text, field string) []string {
	var values []string

	prefix := field + ":"

	for _, line := range lines(text) {
		content := strings.TrimSpace(stripComment(line))
		content = trimDash(content)

		rest, ok := strings.CutPrefix(content, prefix)
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			continue
		}

		if v := strings.TrimSpace(rest); v != "" {
			values = append(values, unquote(v))
		}
	}

	return values
}

// List returns the items of the block sequence under the top-level key in
// text. Items are read from "- item" lines until the next top-level key.
// Returns nil if key is absent.
func List(text, key string) []string {
	var (
		items []string
		found bool
		in    bool
	)

	header := key + ":"

	for _, line := range lines(text) {
		line = strings.TrimRight(stripComment(line), " \t")

		content := strings.TrimSpace(line)
		if content == "" {
			continue
		}

		topLevel := line[0] != ' ' && line[0] != '\t'

		if !in {
			if topLevel && content == header {
				found = true
				in = true
			}

			continue
		}

		if !isDash(content) {
			if topLevel {
				break
			}

			continue
		}

		if v := strings.TrimSpace(content[1:]); v != "" {
			items = append(items, unquote(v))
		}
	}

	if found && items == nil {
		return []string{}
	}

	return items
}

func lines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}

	out := strings.Split(text, "\n")
	for i, l := range out {
		out[i] = strings.TrimSuffix(l, "\r")
	}

	return out
}

// stripComment cuts line at the first "#" outside quotes that starts the
// line or follows whitespace.
func stripComment(line string) string {
	var quote byte

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case quote == '"' && c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			if i == 0 || line[i-1] == ' ' || line[i-1] == '\t' || line[i-1] == ':' {
				quote = c
			}
		case c == '#':
			if i == 0 || line[i-1] == ' ' || line[i-1] == '\t' {
				return line[:i]
			}
		}
	}

	return line
}

func isDash(s string) bool {
	return s == "-" || strings.HasPrefix(s, "- ") || strings.HasPrefix(s, "-\t")
}

func trimDash(s string) string {
	for isDash(s) {
		s = strings.TrimSpace(s[1:])
	}

	return s
}

// unquote removes one level of matching quotes. Double-quoted values are
// unescaped; a doubled quote inside single quotes becomes one.
func unquote(s string) string {
	if len(s) < 2 || s[0] != s[len(s)-1] {
		return s
	}

	switch s[0] {
	case '"':
		u, err := strconv.Unquote(s)
		if err != nil {
			return s[1 : len(s)-1]
		}

		return u
	case '\'':
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}

	return s
}
