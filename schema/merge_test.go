package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/miniyaml/schema"
)

func TestMergeMultipleInputs(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		inputA string
		inputB string
		opts   []schema.Option
		check  func(*testing.T, map[string]any)
	}{
		"union of properties": {
			inputA: "a: 1\nb: hello\n",
			inputB: "b: world\nc: true\n",
			check: func(t *testing.T, got map[string]any) {
				t.Helper()

				props := properties(t, got)
				assert.Contains(t, props, "a")
				assert.Contains(t, props, "b")
				assert.Contains(t, props, "c")
			},
		},
		"required is intersected": {
			inputA: "a: 1\nb: 2\n",
			inputB: "b: 3\nc: 4\n",
			opts:   []schema.Option{schema.WithRequired(true)},
			check: func(t *testing.T, got map[string]any) {
				t.Helper()
				assert.Equal(t, []any{"b"}, got["required"])
			},
		},
		"disjoint required is dropped": {
			inputA: "a: 1\n",
			inputB: "b: 2\n",
			opts:   []schema.Option{schema.WithRequired(true)},
			check: func(t *testing.T, got map[string]any) {
				t.Helper()
				assert.Nil(t, got["required"])
			},
		},
		"first default wins": {
			inputA: "port: 80\n",
			inputB: "port: 8080\n",
			opts:   []schema.Option{schema.WithDefaults(true)},
			check: func(t *testing.T, got map[string]any) {
				t.Helper()

				port, ok := properties(t, got)["port"].(map[string]any)
				require.True(t, ok)
				assert.InDelta(t, 80.0, port["default"], 0)
			},
		},
		"strict nested objects stay closed": {
			inputA: "db:\n  host: a\n",
			inputB: "db:\n  port: 5432\n",
			opts:   []schema.Option{schema.WithStrict(true)},
			check: func(t *testing.T, got map[string]any) {
				t.Helper()

				db, ok := properties(t, got)["db"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, false, db["additionalProperties"])
				assert.Len(t, db["properties"], 2)
			},
		},
		"array items are merged": {
			inputA: "ports:\n  - name: http\n",
			inputB: "ports:\n  - port: 80\n",
			check: func(t *testing.T, got map[string]any) {
				t.Helper()

				ports, ok := properties(t, got)["ports"].(map[string]any)
				require.True(t, ok)

				items, ok := ports["items"].(map[string]any)
				require.True(t, ok)
				assert.Contains(t, items["properties"], "name")
				assert.Contains(t, items["properties"], "port")
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			gen := schema.NewGenerator(tc.opts...)
			s, err := gen.Generate([]byte(tc.inputA), []byte(tc.inputB))
			require.NoError(t, err)

			tc.check(t, toMap(t, s))
		})
	}
}

func TestMergeTypeWidening(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		inputA   string
		inputB   string
		wantType string // empty means no type constraint
	}{
		"integer + number -> number": {
			inputA:   "val: 1\n",
			inputB:   "val: 1.5\n",
			wantType: "number",
		},
		"number + integer -> number": {
			inputA:   "val: 1.5\n",
			inputB:   "val: 1\n",
			wantType: "number",
		},
		"integer + string -> no constraint": {
			inputA: "val: 42\n",
			inputB: "val: hello\n",
		},
		"boolean + string -> no constraint": {
			inputA: "val: true\n",
			inputB: "val: hello\n",
		},
		"array + string -> no constraint": {
			inputA: "val:\n  - a\n",
			inputB: "val: hello\n",
		},
		"object + integer -> no constraint": {
			inputA: "val:\n  key: x\n",
			inputB: "val: 42\n",
		},
		"array + object -> no constraint": {
			inputA: "val: [a]\n",
			inputB: "val: {key: x}\n",
		},
		"any type + null -> same type": {
			inputA:   "val: hello\n",
			inputB:   "val: null\n",
			wantType: "string",
		},
		"null + any type": {
			inputA:   "val:\n",
			inputB:   "val: 42\n",
			wantType: "integer",
		},
		"null + object": {
			inputA:   "val: ~\n",
			inputB:   "val:\n  key: x\n",
			wantType: "object",
		},
		"same type (boolean)": {
			inputA:   "val: true\n",
			inputB:   "val: false\n",
			wantType: "boolean",
		},
		"whole float is integer": {
			inputA:   "val: 1.0\n",
			inputB:   "val: 2\n",
			wantType: "integer",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			gen := schema.NewGenerator()
			s, err := gen.Generate([]byte(tc.inputA), []byte(tc.inputB))
			require.NoError(t, err)

			props := properties(t, toMap(t, s))

			if tc.wantType == "" {
				// No type constraint: property may be true (true schema)
				// or a map without a "type" key.
				val, isMap := props["val"].(map[string]any)
				if isMap {
					assert.Nil(t, val["type"], "expected no type constraint")
				}
			} else {
				val, ok := props["val"].(map[string]any)
				require.True(t, ok, "expected val to be a map")
				assert.Equal(t, tc.wantType, val["type"])
			}
		})
	}
}
