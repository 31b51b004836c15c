package miniyaml

import "strings"

// chomp controls the trailing line breaks of a block scalar.
type chomp uint8

const (
	chompClip chomp = iota
	chompStrip
	chompKeep
)

// blockStyle is a parsed block scalar header such as "|", ">-" or "|2+".
type blockStyle struct {
	chomp  chomp
	indent int // explicit indentation indicator, 0 when absent
	folded bool
}

// parseBlockStyle parses a block scalar header. The indicator is followed by
// at most one chomping indicator and one indentation digit, in either order.
func parseBlockStyle(s string) (blockStyle, bool) {
	if s == "" || (s[0] != '|' && s[0] != '>') || len(s) > 3 {
		return blockStyle{}, false
	}

	style := blockStyle{folded: s[0] == '>'}
	seenChomp := false

	for _, c := range s[1:] {
		switch {
		case (c == '-' || c == '+') && !seenChomp:
			seenChomp = true
			style.chomp = chompStrip

			if c == '+' {
				style.chomp = chompKeep
			}
		case c >= '1' && c <= '9' && style.indent == 0:
			style.indent = int(c - '0')
		default:
			return blockStyle{}, false
		}
	}

	return style, true
}

// parseBlockScalar reads the raw lines after headerLine that are indented
// deeper than parentIndent. The first shallower non-blank line ends the
// scalar and is left for the caller. Tokens from the consumed lines are
// skipped afterwards.
func (c *parseContext) parseBlockScalar(style blockStyle, parentIndent, headerLine int) Value {
	contentIndent := -1
	if style.indent > 0 {
		contentIndent = parentIndent + style.indent
	}

	var body []string

	last := headerLine

	for i := headerLine + 1; i < len(c.lines); i++ {
		line := c.lines[i]

		if isBlank(line) {
			body = append(body, "")
			last = i

			continue
		}

		indent := indentOf(line)
		if indent <= parentIndent {
			break
		}

		if contentIndent < 0 {
			contentIndent = indent
		}

		body = append(body, line[min(indent, contentIndent):])
		last = i
	}

	for c.pos < len(c.tokens) && c.tokens[c.pos].line <= last {
		c.pos++
	}

	n := len(body)
	for n > 0 && body[n-1] == "" {
		n--
	}

	trailing := len(body) - n
	lines := body[:n]

	var text string
	if style.folded {
		text = fold(lines)
	} else {
		text = strings.Join(lines, "\n")
	}

	switch style.chomp {
	case chompStrip:
		return String(text)
	case chompKeep:
		if len(lines) == 0 {
			return String(strings.Repeat("\n", trailing))
		}

		return String(text + "\n" + strings.Repeat("\n", trailing))
	}

	if len(lines) == 0 {
		return String("")
	}

	return String(text + "\n")
}

// fold joins adjacent lines with a space. Each blank line between two
// lines becomes a line break, and more-indented lines keep their breaks.
func fold(lines []string) string {
	var (
		sb         strings.Builder
		blanks     int
		prevIndent bool
		started    bool
	)

	for _, line := range lines {
		if line == "" {
			blanks++

			continue
		}

		indented := line[0] == ' ' || line[0] == '\t'

		switch {
		case blanks > 0:
			sb.WriteString(strings.Repeat("\n", blanks))
		case started && (indented || prevIndent):
			sb.WriteByte('\n')
		case started:
			sb.WriteByte(' ')
		}

		sb.WriteString(line)

		blanks = 0
		started = true
		prevIndent = indented
	}

	return sb.String()
}
