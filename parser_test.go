package miniyaml_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/miniyaml"
	"go.jacobcolvin.com/miniyaml/stringtest"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want  any
		input string
	}{
		"empty document": {
			input: "",
			want:  map[string]any{},
		},
		"whitespace only": {
			input: "  \n\t\n   ",
			want:  map[string]any{},
		},
		"comments and markers only": {
			input: "# header\n  # indented\n---\n...\n",
			want:  map[string]any{},
		},
		"flat mapping": {
			input: "key: value",
			want:  map[string]any{"key": "value"},
		},
		"quoted colon and comma": {
			input: `key: "a: b, c"`,
			want:  map[string]any{"key": "a: b, c"},
		},
		"zero is a number": {
			input: "n: 0",
			want:  map[string]any{"n": float64(0)},
		},
		"leading zero is a string": {
			input: "n: 007",
			want:  map[string]any{"n": "007"},
		},
		"numbers": {
			input: stringtest.JoinLF(
				"a: -1.5",
				"b: 1e3",
				"c: 1e999",
				"d: .5",
				"e: +1",
				"f: 42",
			),
			want: map[string]any{
				"a": -1.5,
				"b": float64(1000),
				"c": "1e999",
				"d": ".5",
				"e": "+1",
				"f": float64(42),
			},
		},
		"booleans and nulls": {
			input: stringtest.JoinLF(
				"a: true",
				"b: false",
				"c: null",
				"d: ~",
				"e:",
				"f: True",
			),
			want: map[string]any{
				"a": true,
				"b": false,
				"c": nil,
				"d": nil,
				"e": nil,
				"f": "True",
			},
		},
		"times and urls keep their colons": {
			input: "at: 12:30\nurl: http://example.com/a",
			want:  map[string]any{"at": "12:30", "url": "http://example.com/a"},
		},
		"inline comments": {
			input: stringtest.JoinLF(
				"a: value # comment",
				"b: 'x # y'",
				"c: http://h/#frag",
			),
			want: map[string]any{"a": "value", "b": "x # y", "c": "http://h/#frag"},
		},
		"quoted keys": {
			input: stringtest.JoinLF(
				`"a: b": 1`,
				`'it''s': 2`,
			),
			want: map[string]any{"a: b": float64(1), "it's": float64(2)},
		},
		"quoted escapes": {
			input: stringtest.JoinLF(
				`a: "line\nbreak"`,
				`b: 'it''s'`,
				`c: "bad \q escape"`,
			),
			want: map[string]any{"a": "line\nbreak", "b": "it's", "c": `bad \q escape`},
		},
		"apostrophes in plain text": {
			input: "note: don't stop: it's fine",
			want:  map[string]any{"note": "don't stop: it's fine"},
		},
		"nested mappings stay distinct siblings": {
			input: stringtest.Input(`
				parent:
				  a: 1
				child:
				  b: 2
			`),
			want: map[string]any{
				"parent": map[string]any{"a": float64(1)},
				"child":  map[string]any{"b": float64(2)},
			},
		},
		"duplicate keys overwrite": {
			input: "a: 1\nb: 2\na: 3",
			want:  map[string]any{"a": float64(3), "b": float64(2)},
		},
		"block sequence": {
			input: stringtest.Input(`
				items:
				  - a
				  - 2
				  - true
			`),
			want: map[string]any{"items": []any{"a", float64(2), true}},
		},
		"indentless sequence": {
			input: stringtest.Input(`
				list:
				- a
				- b
				next: 1
			`),
			want: map[string]any{"list": []any{"a", "b"}, "next": float64(1)},
		},
		"top-level sequence": {
			input: "- a\n- b",
			want:  []any{"a", "b"},
		},
		"nested sequences": {
			input: "-\n  - a\n  - b\n- c",
			want:  []any{[]any{"a", "b"}, "c"},
		},
		"empty dash is null": {
			input: "- \n- b",
			want:  []any{nil, "b"},
		},
		"compact mapping items": {
			input: stringtest.Input(`
				items:
				  - name: a
				    kind: x
				  - name: b
				    kind: y
				    extra: 1
			`),
			want: map[string]any{"items": []any{
				map[string]any{"name": "a", "kind": "x"},
				map[string]any{"name": "b", "kind": "y", "extra": float64(1)},
			}},
		},
		"compact mapping with nested blocks": {
			input: stringtest.Input(`
				- name: a
				  env:
				    K: v
				  tags:
				  - t
				- name: b
			`),
			want: []any{
				map[string]any{
					"name": "a",
					"env":  map[string]any{"K": "v"},
					"tags": []any{"t"},
				},
				map[string]any{"name": "b"},
			},
		},
		"compact mapping with block scalar": {
			input: stringtest.Input(`
				- run: |
				    echo hi
				  name: x
			`),
			want: []any{map[string]any{"run": "echo hi\n", "name": "x"}},
		},
		"flow sequence of mappings": {
			input: "items: [{a: 1}, {b: 2}]",
			want: map[string]any{"items": []any{
				map[string]any{"a": float64(1)},
				map[string]any{"b": float64(2)},
			}},
		},
		"flow nesting and quotes": {
			input: `tags: [a, "b, c", [1, 2], {k: v}]`,
			want: map[string]any{"tags": []any{
				"a", "b, c", []any{float64(1), float64(2)}, map[string]any{"k": "v"},
			}},
		},
		"empty flow collections": {
			input: "a: []\nb: {}",
			want:  map[string]any{"a": []any{}, "b": map[string]any{}},
		},
		"flow trailing comma": {
			input: "a: [1, 2,]",
			want:  map[string]any{"a": []any{float64(1), float64(2)}},
		},
		"flow mapping splits on first colon": {
			input: "a: {url: http://x.io/p, n: 1, bare}",
			want: map[string]any{"a": map[string]any{
				"url":  "http://x.io/p",
				"n":    float64(1),
				"bare": nil,
			}},
		},
		"flow items in sequences": {
			input: "- [1, 2]\n- {a: b}",
			want:  []any{[]any{float64(1), float64(2)}, map[string]any{"a": "b"}},
		},
		"unterminated flow sequence": {
			input: "a: [1, 2",
			want:  map[string]any{"a": []any{float64(1), float64(2)}},
		},
		"extra closer is absorbed": {
			input: "a: [1, 2]]",
			want:  map[string]any{"a": []any{float64(1), "2]"}},
		},
		"multi-line plain scalar": {
			input: "desc: this is\n  continued here\nnext: 1",
			want:  map[string]any{"desc": "this is continued here", "next": float64(1)},
		},
		"emphasis in prose": {
			input: "summary: Use the *fast* path and **bold** text",
			want:  map[string]any{"summary": "Use the *fast* path and **bold** text"},
		},
		"crlf line endings": {
			input: "a: 1\r\nb: two\r\n",
			want:  map[string]any{"a": float64(1), "b": "two"},
		},
		"document markers are skipped": {
			input: "---\na: 1\n...\n",
			want:  map[string]any{"a": float64(1)},
		},
		"stray lines are dropped": {
			input: "a: 1\njust text\nb: 2",
			want:  map[string]any{"a": float64(1), "b": float64(2)},
		},
		"scalar document": {
			input: "hello",
			want:  map[string]any{},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := miniyaml.Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Interface())
		})
	}
}

func TestParseBlockScalars(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"literal clip": {
			input: "text: |\n  line1\n  line2\nnext: 1",
			want:  "line1\nline2\n",
		},
		"literal strip": {
			input: "text: |-\n  a\n  b\n\n",
			want:  "a\nb",
		},
		"literal keep": {
			input: "text: |+\n  a\n\nnext: 1",
			want:  "a\n\n",
		},
		"folded clip": {
			input: "text: >\n  a\n  b\n\n  c\nnext: 1",
			want:  "a b\nc\n",
		},
		"folded strip": {
			input: "text: >-\n  line1\n  line2\n",
			want:  "line1 line2",
		},
		"folded keeps more-indented lines": {
			input: "text: >\n  a\n    code\n  b",
			want:  "a\n  code\nb\n",
		},
		"empty block clips to empty string": {
			input: "text: |\nnext: 1",
			want:  "",
		},
		"empty block with keep": {
			input: "text: |+\n\n\nnext: 1",
			want:  "\n\n",
		},
		"relative indentation preserved": {
			input: "text: |\n  a\n    b\n  c\n",
			want:  "a\n  b\nc\n",
		},
		"hash is literal text": {
			input: "text: |\n  # not a comment\n  echo hi # still text\nnext: 1",
			want:  "# not a comment\necho hi # still text\n",
		},
		"indentation indicator": {
			input: "text: |2\n    x\n  y",
			want:  "  x\ny\n",
		},
		"indicator with chomp in either order": {
			input: "text: |-2\n   x\n",
			want:  " x",
		},
		"nested under mapping": {
			input: "outer:\n  text: >\n    a\n    b\n  next: 1",
			want:  "a b\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := miniyaml.Parse(tc.input)
			require.NoError(t, err)

			m, ok := got.AsMap()
			require.True(t, ok)

			if outer, ok := m.Get("outer"); ok {
				m, ok = outer.AsMap()
				require.True(t, ok)
			}

			text, ok := m.Get("text")
			require.True(t, ok)

			s, ok := text.AsString()
			require.True(t, ok, "text is %s", text.Kind())
			assert.Equal(t, tc.want, s)

			if next, ok := m.Get("next"); ok {
				assert.Equal(t, float64(1), next.Interface())
			}
		})
	}
}

func TestParseBlockScalarInSequence(t *testing.T) {
	t.Parallel()

	got, err := miniyaml.Parse("- |\n  hi\n- x")
	require.NoError(t, err)
	assert.Equal(t, []any{"hi\n", "x"}, got.Interface())
}

func TestParseOrder(t *testing.T) {
	t.Parallel()

	input := stringtest.Input(`
		zeta: 1
		alpha: 2
		items:
		  - name: b
		    kind: y
		    extra: 1
		zeta: 3
	`)

	got, err := miniyaml.Parse(input)
	require.NoError(t, err)

	m, ok := got.AsMap()
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha", "items"}, m.Keys())

	zeta, _ := m.Get("zeta")
	assert.Equal(t, float64(3), zeta.Interface())

	items, _ := m.Get("items")
	list, ok := items.AsSlice()
	require.True(t, ok)
	require.Len(t, list, 1)

	item, ok := list[0].AsMap()
	require.True(t, ok)
	assert.Equal(t, []string{"name", "kind", "extra"}, item.Keys())

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"zeta":3,"alpha":2,"items":[{"name":"b","kind":"y","extra":1}]}`, string(out))
	assert.True(t, strings.HasPrefix(string(out), `{"zeta":3,"alpha":2,`))
}

func TestParseUnsupported(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    string
		category miniyaml.Category
		line     int
	}{
		"anchor after key": {
			input:    "a: &anchor 1",
			category: miniyaml.CategoryAnchor,
			line:     1,
		},
		"anchor at line start": {
			input:    "ok: 1\n&a key: 1",
			category: miniyaml.CategoryAnchor,
			line:     2,
		},
		"alias after key": {
			input:    "b: *ref",
			category: miniyaml.CategoryAlias,
			line:     1,
		},
		"alias after dash": {
			input:    "list:\n  - *ref",
			category: miniyaml.CategoryAlias,
			line:     2,
		},
		"alias after nested dash": {
			input:    "- - *ref",
			category: miniyaml.CategoryAlias,
			line:     1,
		},
		"tag": {
			input:    "c: !!str 5",
			category: miniyaml.CategoryTag,
			line:     1,
		},
		"tag on item": {
			input:    "- !!int 5",
			category: miniyaml.CategoryTag,
			line:     1,
		},
		"merge key with alias": {
			input:    "<<: *base",
			category: miniyaml.CategoryMergeKey,
			line:     1,
		},
		"nested merge key": {
			input:    "base:\n  <<: {a: 1}",
			category: miniyaml.CategoryMergeKey,
			line:     2,
		},
		"line numbers count blank and comment lines": {
			input:    "a: 1\n\n# c\nb: *x",
			category: miniyaml.CategoryAlias,
			line:     4,
		},
		"first offending line wins": {
			input:    "a: !!str x\nb: &y 1",
			category: miniyaml.CategoryTag,
			line:     1,
		},
		"after block scalar ends": {
			input:    "cmd: |\n  echo\nb: *x",
			category: miniyaml.CategoryAlias,
			line:     3,
		},
		"apostrophe in key": {
			input:    "key's: &anchor value # it's",
			category: miniyaml.CategoryAnchor,
			line:     1,
		},
		"apostrophes in prose": {
			input:    "note: it's fine, isn't: *ref",
			category: miniyaml.CategoryAlias,
			line:     1,
		},
		"invalid block header is not a block": {
			input:    "a: |+-\n  *alias",
			category: miniyaml.CategoryAlias,
			line:     2,
		},
		"repeated indentation digit": {
			input:    "a: |22\n  &anchor x",
			category: miniyaml.CategoryAnchor,
			line:     2,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := miniyaml.Parse(tc.input)
			require.Error(t, err)
			require.ErrorIs(t, err, miniyaml.ErrUnsupportedSyntax)

			var syntaxErr *miniyaml.UnsupportedSyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tc.category, syntaxErr.Category)
			assert.Equal(t, tc.line, syntaxErr.Line)
			assert.NotEmpty(t, syntaxErr.Snippet)
			assert.Contains(t, err.Error(), string(tc.category))
		})
	}
}

func TestParseUnsupportedSnippet(t *testing.T) {
	t.Parallel()

	long := "key: *" + strings.Repeat("x", 100)

	_, err := miniyaml.Parse("  " + long + "  ")

	var syntaxErr *miniyaml.UnsupportedSyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.LessOrEqual(t, len([]rune(syntaxErr.Snippet)), 60)
	assert.True(t, strings.HasPrefix(syntaxErr.Snippet, "key: *xxx"))
	assert.True(t, strings.HasSuffix(syntaxErr.Snippet, "..."))

	_, err = miniyaml.Parse("b: *short")
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "b: *short", syntaxErr.Snippet)
}

func TestParseLookalikes(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want  any
		input string
	}{
		"quoted markers": {
			input: stringtest.JoinLF(
				`a: "&anchor"`,
				`b: '*alias'`,
				`c: "!!str"`,
				`d: "<<: x"`,
			),
			want: map[string]any{"a": "&anchor", "b": "*alias", "c": "!!str", "d": "<<: x"},
		},
		"emphasis in trailing prose": {
			input: "summary: This is *really* important",
			want:  map[string]any{"summary": "This is *really* important"},
		},
		"bold at value start": {
			input: "summary: **bold** start",
			want:  map[string]any{"summary": "**bold** start"},
		},
		"ampersand in prose": {
			input: "note: salt & pepper",
			want:  map[string]any{"note": "salt & pepper"},
		},
		"dash in prose": {
			input: "note: fast - *very* fast",
			want:  map[string]any{"note": "fast - *very* fast"},
		},
		"markers in comments": {
			input: "a: 1 # see *alias and &anchor\n# <<: *x",
			want:  map[string]any{"a": float64(1)},
		},
		"markers in block scalar body": {
			input: "cmd: |\n  <<: *x\n  &y\n  - !!z\nnext: 1",
			want:  map[string]any{"cmd": "<<: *x\n&y\n- !!z\n", "next": float64(1)},
		},
		"arithmetic": {
			input: "op: a*b",
			want:  map[string]any{"op": "a*b"},
		},
		"escaped quote in double quotes": {
			input: `b: "a\" : *x"`,
			want:  map[string]any{"b": `a" : *x`},
		},
		"marker in quotes after apostrophe": {
			input: `it's: "*x"`,
			want:  map[string]any{"it's": "*x"},
		},
		"block header with indicators": {
			input: "a: |2-\n    *x\nb: 1",
			want:  map[string]any{"a": "  *x", "b": float64(1)},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := miniyaml.Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Interface())
		})
	}
}

func TestParseConcurrent(t *testing.T) {
	t.Parallel()

	input := "a: 1\nitems:\n  - name: x\n    tags: [p, q]\n"

	want, err := miniyaml.Parse(input)
	require.NoError(t, err)

	errs := make(chan error, 8)

	for range 8 {
		go func() {
			got, err := miniyaml.Parse(input)
			if err == nil && !assert.ObjectsAreEqual(want, got) {
				err = errors.New("result differs")
			}

			errs <- err
		}()
	}

	for range 8 {
		require.NoError(t, <-errs)
	}
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"a: 1",
		"a: [1, {b: 2}]",
		"- name: x\n  v: |\n    y\n",
		"a: >-\n  b\n\n  c",
		"a: *x",
		"\"unterminated: 1",
		"a: [[[",
		"- - - -",
		"k: '''",
		"-\n -\n  -",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		v, err := miniyaml.Parse(input)
		if err != nil {
			require.ErrorIs(t, err, miniyaml.ErrUnsupportedSyntax)

			return
		}

		_, err = json.Marshal(v)
		require.NoError(t, err)
	})
}
