// Package diff compares two [miniyaml.Value] trees.
//
// [Values] reports additions, removals and changes by path. Paths use a
// jq-like form: ".spec.ports[0].name", with keys that are not plain
// identifiers quoted in brackets: .labels["app.kubernetes.io/name"].
// Mapping keys are aligned with a sequence diff over the key order, so
// changes are reported in document order and reordering keys alone produces
// no change. Sequences are compared by index.
//
// [Printer] renders the result as text, optionally colored.
package diff
