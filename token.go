package miniyaml

import "strings"

// token is one structurally significant line.
type token struct {
	// content starts at the indent column, with the inline comment and
	// trailing whitespace removed.
	content string
	indent  int
	// line is the 0-based index into the raw lines. Block scalars re-read
	// raw lines through it because "#" in their bodies is literal text.
	line int
}

// splitLines splits text on LF, dropping a trailing CR from each line. The
// final line break terminates the last line rather than opening a new one.
func splitLines(text string) []string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// tokenize reduces raw lines to tokens. Blank lines, full-line comments
// and document markers produce no token.
func tokenize(lines []string) []token {
	tokens := make([]token, 0, len(lines))

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || trimmed == "---" || trimmed == "..." {
			continue
		}

		indent := indentOf(line)

		content := strings.TrimRight(stripInlineComment(line[indent:]), " \t")
		if content == "" {
			continue
		}

		tokens = append(tokens, token{
			content: content,
			indent:  indent,
			line:    i,
		})
	}

	return tokens
}
