package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"golang.org/x/term"

	"go.jacobcolvin.com/miniyaml"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
}

// encodeJSON renders v as JSON followed by a newline. An indent of zero
// produces compact output.
func encodeJSON(v miniyaml.Value, indent int) ([]byte, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	if indent > 0 {
		var buf bytes.Buffer

		err = json.Indent(&buf, out, "", strings.Repeat(" ", indent))
		if err != nil {
			return nil, err
		}

		out = buf.Bytes()
	}

	return append(out, '\n'), nil
}

// encodeYAML renders v as a YAML document with mapping keys in document
// order.
func encodeYAML(v miniyaml.Value, indent int) ([]byte, error) {
	if indent <= 0 {
		indent = 2
	}

	out, err := yaml.MarshalWithOptions(yamlValue(v), yaml.Indent(indent), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return out, nil
}

// yamlValue converts v into values the YAML encoder renders faithfully:
// mappings become [yaml.MapSlice] and whole numbers become integers.
func yamlValue(v miniyaml.Value) any {
	switch v.Kind() {
	case miniyaml.KindMapping:
		m, _ := v.AsMap()

		out := make(yaml.MapSlice, 0, m.Len())
		for k, child := range m.All() {
			out = append(out, yaml.MapItem{Key: k, Value: yamlValue(child)})
		}

		return out
	case miniyaml.KindSequence:
		items, _ := v.AsSlice()

		out := make([]any, 0, len(items))
		for _, item := range items {
			out = append(out, yamlValue(item))
		}

		return out
	case miniyaml.KindNumber:
		f, _ := v.AsNumber()
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}

		return f
	default:
		return v.Interface()
	}
}
