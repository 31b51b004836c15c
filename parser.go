package miniyaml

import "strings"

// parseContext is the state of one [Parse] call. The cursor pos only moves
// forward.
type parseContext struct {
	lines  []string
	tokens []token
	pos    int
}

// Parse parses a document into a [Value] tree.
//
// Empty, whitespace-only and comment-only documents produce an empty
// mapping. Anchors, aliases, explicit tags and merge keys produce an
// [*UnsupportedSyntaxError], which is the only error returned; other
// malformed input yields a best-effort tree.
func Parse(text string) (Value, error) {
	lines := splitLines(text)

	err := detectUnsupported(lines)
	if err != nil {
		return Value{}, err
	}

	c := &parseContext{
		lines:  lines,
		tokens: tokenize(lines),
	}

	v, ok := c.parseNode(0)
	if !ok {
		return Mapping(nil), nil
	}

	return v, nil
}

// ParseBytes is [Parse] for a byte slice.
func ParseBytes(data []byte) (Value, error) {
	return Parse(string(data))
}

func (c *parseContext) peek() (token, bool) {
	if c.pos >= len(c.tokens) {
		return token{}, false
	}

	return c.tokens[c.pos], true
}

// parseNode parses the block starting at the next token, if that token is
// indented at least minIndent. The block's indent is the token's own.
func (c *parseContext) parseNode(minIndent int) (Value, bool) {
	tok, ok := c.peek()
	if !ok || tok.indent < minIndent {
		return Value{}, false
	}

	if isSeqMarker(tok.content) {
		return c.parseSequence(tok.indent), true
	}

	return c.parseMapping(tok.indent), true
}

func (c *parseContext) parseMapping(indent int) Value {
	m := NewMap()
	c.parseEntries(m, indent)

	return Mapping(m)
}

// parseEntries adds the "key: value" tokens at exactly indent to m. It
// stops at a token with another indent or a sequence marker. Tokens at
// indent without a key separator are dropped.
func (c *parseContext) parseEntries(m *Map, indent int) {
	for {
		tok, ok := c.peek()
		if !ok || tok.indent != indent || isSeqMarker(tok.content) {
			return
		}

		c.pos++

		colon := findKeyColon(tok.content)
		if colon < 0 {
			continue
		}

		key := unquote(strings.TrimSpace(tok.content[:colon]))
		m.Set(key, c.parseEntryValue(tok.content[colon+1:], indent, tok.line))
	}
}

// parseEntryValue resolves the value of a mapping entry whose key sits at
// column indent. An empty value may be followed by a sequence at the key's
// own column.
func (c *parseContext) parseEntryValue(raw string, indent, line int) Value {
	raw = strings.TrimSpace(raw)

	if raw == "" {
		if tok, ok := c.peek(); ok && tok.indent == indent && isSeqMarker(tok.content) {
			return c.parseSequence(indent)
		}
	}

	return c.resolveValue(raw, indent, line)
}

// resolveValue routes the right-hand side of a key or dash owned by a node
// at column indent.
func (c *parseContext) resolveValue(raw string, indent, line int) Value {
	if raw == "" {
		if v, ok := c.parseNode(indent + 1); ok {
			return v
		}

		return Null()
	}

	if style, ok := parseBlockStyle(raw); ok {
		return c.parseBlockScalar(style, indent, line)
	}

	if raw[0] == '[' || raw[0] == '{' {
		return parseFlow(raw)
	}

	return c.parsePlain(raw, indent)
}

// parsePlain resolves a scalar. Unquoted text continues over the following
// tokens indented deeper than indent, joined by single spaces.
func (c *parseContext) parsePlain(raw string, indent int) Value {
	if isQuoted(raw) {
		return resolveScalar(raw)
	}

	parts := []string{raw}

	for {
		tok, ok := c.peek()
		if !ok || tok.indent <= indent {
			break
		}

		parts = append(parts, tok.content)
		c.pos++
	}

	return resolveScalar(strings.Join(parts, " "))
}

func (c *parseContext) parseSequence(indent int) Value {
	items := []Value{}

	for {
		tok, ok := c.peek()
		if !ok || tok.indent != indent || !isSeqMarker(tok.content) {
			break
		}

		c.pos++

		items = append(items, c.parseItem(tok, indent))
	}

	return Sequence(items...)
}

// parseItem resolves the remainder of a sequence item at column indent.
func (c *parseContext) parseItem(tok token, indent int) Value {
	rest := strings.TrimSpace(tok.content[1:])

	switch {
	case rest == "":
		if v, ok := c.parseNode(indent + 1); ok {
			return v
		}

		return Null()
	case rest[0] == '[' || rest[0] == '{':
		return parseFlow(rest)
	}

	if style, ok := parseBlockStyle(rest); ok {
		return c.parseBlockScalar(style, indent, tok.line)
	}

	if colon := findKeyColon(rest); colon >= 0 {
		return c.parseCompactMapping(tok, rest, colon)
	}

	return c.parsePlain(rest, indent)
}

// parseCompactMapping parses an item such as "- name: x" whose first field
// shares the dash line. Later fields are the "key: value" tokens aligned
// with the first key, base + 2 for a "- " marker.
func (c *parseContext) parseCompactMapping(tok token, rest string, colon int) Value {
	keyCol := tok.indent + len(tok.content) - len(rest)

	m := NewMap()
	key := unquote(strings.TrimSpace(rest[:colon]))
	m.Set(key, c.parseEntryValue(rest[colon+1:], keyCol, tok.line))

	c.parseEntries(m, keyCol)

	return Mapping(m)
}
