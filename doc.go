// Package miniyaml parses a restricted subset of YAML into a [Value] tree.
//
// It is meant for contract and configuration files read by tooling that
// does not want a general-purpose YAML dependency. The subset covers block
// mappings and sequences, flow collections on a single line, literal and
// folded block scalars, and plain or quoted scalars. It deliberately
// excludes the features that create hidden aliasing or type coercion.
//
// # Unsupported Syntax
//
// Anchors ("&name"), aliases ("*name"), explicit tags ("!!type") and merge
// keys ("<<:") are rejected with an [*UnsupportedSyntaxError] naming the
// category, the 1-based line and a snippet of the line. A marker only
// counts where YAML would read it as a node property: at the start of a
// line, after a sequence dash, or after a "key: " separator. Markers inside
// quotes, comments, block scalar bodies or ordinary prose are text:
//
//	summary: the *fast* path   # fine
//	summary: *fast             # alias, rejected
//
// # Parsing Pipeline
//
// [Parse] runs three phases:
//
//  1. Detect: raw lines are scanned for unsupported syntax.
//
//  2. Tokenize: every structurally significant line becomes a token holding
//     its indent, its content without comments, and its raw line index.
//
//  3. Descend: mappings and sequences are parsed recursively by comparing
//     token indents. Block scalars re-read the raw lines so that "#" inside
//     them stays literal.
//
// # Scalars
//
// "null", "~" and empty values are null; "true" and "false" are booleans;
// JSON-style numbers are float64 ("007" and ".5" stay strings); quoted
// text is unquoted; everything else is a string. Mapping keys keep their
// order and a repeated key overwrites the earlier value.
//
// # Leniency
//
// Input outside the rejected constructs is assumed to be well formed.
// Unbalanced brackets, unterminated quotes and stray lines produce a
// best-effort tree rather than an error, so callers that relied on the
// permissive behaviour keep working.
package miniyaml
