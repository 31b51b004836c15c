package miniyaml

import (
	"regexp"
	"strings"
)

const maxSnippetLen = 60

// valuePos matches the positions where a node property may start: the
// beginning of the line (after any sequence dashes) or right after a
// "key: " separator. Markers elsewhere in a line are ordinary text.
const valuePos = `(?:^(?:-[ \t]+)*|:[ \t]+)`

var (
	unsupported = []struct {
		re       *regexp.Regexp
		category Category
	}{
		{regexp.MustCompile(`^(?:-[ \t]+)*<<[ \t]*:`), CategoryMergeKey},
		{regexp.MustCompile(valuePos + `&[^\s,\[\]{}&*]`), CategoryAnchor},
		{regexp.MustCompile(valuePos + `\*[^\s,\[\]{}&*]`), CategoryAlias},
		{regexp.MustCompile(valuePos + `!![^\s,\[\]{}]`), CategoryTag},
	}

	blockHeader   = regexp.MustCompile(valuePos + `([|>]\S*)$`)
	leadingDashes = regexp.MustCompile(`^(?:-[ \t]+)*`)
)

// detectUnsupported scans raw lines for anchors, aliases, tags and merge
// keys, returning an [*UnsupportedSyntaxError] for the first one found.
// Quoted text, comments and block scalar bodies never match.
func detectUnsupported(lines []string) error {
	// Indent of the line that opened the current block scalar, or -1.
	blockParent := -1

	for i, line := range lines {
		if isBlank(line) {
			continue
		}

		indent := indentOf(line)

		if blockParent >= 0 {
			if indent > blockParent {
				continue
			}

			blockParent = -1
		}

		content := strings.TrimSpace(line)
		if strings.HasPrefix(content, "#") {
			continue
		}

		masked := strings.TrimRight(stripInlineComment(maskQuoted(content)), " \t")

		for _, u := range unsupported {
			if u.re.MatchString(masked) {
				return &UnsupportedSyntaxError{
					Category: u.category,
					Line:     i + 1,
					Snippet:  snippet(content),
				}
			}
		}

		if isBlockHeader(masked) {
			blockParent = blockOwner(indent, masked)
		}
	}

	return nil
}

// blockOwner returns the column a block scalar body must be indented past:
// the key for "- key: |", the last dash for "- |", the line indent
// otherwise.
func blockOwner(indent int, content string) int {
	dashes := leadingDashes.FindString(content)
	if dashes == "" || findKeyColon(content[len(dashes):]) >= 0 {
		return indent + len(dashes)
	}

	return indent + strings.LastIndexByte(dashes, '-')
}

// maskQuoted blanks every byte of s that [eachUnquoted] treats as quoted,
// delimiters included.
func maskQuoted(s string) string {
	masked := []byte(strings.Repeat("_", len(s)))

	eachUnquoted(s, func(i int) bool {
		masked[i] = s[i]

		return true
	})

	return string(masked)
}

// isBlockHeader reports whether a masked line ends in a block scalar header
// the parser accepts.
func isBlockHeader(masked string) bool {
	m := blockHeader.FindStringSubmatch(masked)
	if m == nil {
		return false
	}

	_, ok := parseBlockStyle(m[1])

	return ok
}

func snippet(s string) string {
	r := []rune(s)
	if len(r) <= maxSnippetLen {
		return s
	}

	return string(r[:maxSnippetLen-3]) + "..."
}
