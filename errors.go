package miniyaml

import (
	"errors"
	"fmt"
)

// ErrUnsupportedSyntax is matched by every [*UnsupportedSyntaxError].
var ErrUnsupportedSyntax = errors.New("unsupported syntax")

// Category names a rejected YAML construct.
type Category string

const (
	// CategoryAnchor is an anchor definition such as "&defaults".
	CategoryAnchor Category = "anchor"
	// CategoryAlias is an alias reference such as "*defaults".
	CategoryAlias Category = "alias"
	// CategoryTag is an explicit type tag such as "!!str".
	CategoryTag Category = "tag"
	// CategoryMergeKey is a merge key "<<:".
	CategoryMergeKey Category = "merge key"
)

// UnsupportedSyntaxError is returned by [Parse] when a document uses a
// construct the parser refuses to support. It is the only error [Parse]
// returns.
type UnsupportedSyntaxError struct {
	Category Category
	// Snippet is the offending line, trimmed and truncated to at most
	// [maxSnippetLen] characters.
	Snippet string
	// Line is 1-based.
	Line int
}

// Error implements error.
func (e *UnsupportedSyntaxError) Error() string {
	return fmt.Sprintf("%s: %s at line %d: %q", ErrUnsupportedSyntax, e.Category, e.Line, e.Snippet)
}

// Unwrap returns [ErrUnsupportedSyntax].
func (e *UnsupportedSyntaxError) Unwrap() error {
	return ErrUnsupportedSyntax
}
