package diff

import (
	"strconv"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"go.jacobcolvin.com/miniyaml"
)

// Op is the kind of a [Change].
type Op uint8

const (
	// OpAdd marks a value present only in the new document.
	OpAdd Op = iota
	// OpRemove marks a value present only in the old document.
	OpRemove
	// OpChange marks a value present in both documents with different content.
	OpChange
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpChange:
		return "change"
	default:
		return "unknown"
	}
}

// Change is one difference between two value trees.
//
// From is null for [OpAdd] and To is null for [OpRemove].
type Change struct {
	From miniyaml.Value
	To   miniyaml.Value
	Path string
	Op   Op
}

// Values returns the differences between from and to, ordered by the
// position of each path in the documents.
//
// Mappings are compared key by key, sequences index by index. A value whose
// kind changes is reported as a single [OpChange] at its path.
func Values(from, to miniyaml.Value) []Change {
	var changes []Change

	walk(&changes, ".", from, to)

	return changes
}

func walk(changes *[]Change, path string, from, to miniyaml.Value) {
	if from.Kind() != to.Kind() {
		*changes = append(*changes, Change{Path: path, Op: OpChange, From: from, To: to})

		return
	}

	switch from.Kind() {
	case miniyaml.KindMapping:
		fm, _ := from.AsMap()
		tm, _ := to.AsMap()

		walkMapping(changes, path, fm, tm)
	case miniyaml.KindSequence:
		fs, _ := from.AsSlice()
		ts, _ := to.AsSlice()

		walkSequence(changes, path, fs, ts)
	default:
		if !Equal(from, to) {
			*changes = append(*changes, Change{Path: path, Op: OpChange, From: from, To: to})
		}
	}
}

// walkMapping diffs the key sequences of both mappings so that removed and
// added keys are reported where they occur rather than grouped at the end.
func walkMapping(changes *[]Change, path string, from, to *miniyaml.Map) {
	runes := map[string]rune{}

	var keys []string

	encode := func(m *miniyaml.Map) []rune {
		out := make([]rune, 0, m.Len())

		for _, k := range m.Keys() {
			r, ok := runes[k]
			if !ok {
				// Offset past the surrogate range so every key maps to a
				// valid rune.
				r = rune(len(keys)) + 0xE000
				runes[k] = r

				keys = append(keys, k)
			}

			out = append(out, r)
		}

		return out
	}

	fromRunes := encode(from)
	toRunes := encode(to)

	dmp := diffpatch.New()

	for _, d := range dmp.DiffMainRunes(fromRunes, toRunes, false) {
		for _, r := range d.Text {
			key := keys[r-0xE000]
			child := childPath(path, key)

			fv, inFrom := from.Get(key)
			tv, inTo := to.Get(key)

			// A moved key shows up as a delete and an insert; compare it
			// once, at its new position.
			switch d.Type {
			case diffpatch.DiffDelete:
				if !inTo {
					*changes = append(*changes, Change{Path: child, Op: OpRemove, From: fv, To: miniyaml.Null()})
				}
			case diffpatch.DiffInsert:
				if inFrom {
					walk(changes, child, fv, tv)
				} else {
					*changes = append(*changes, Change{Path: child, Op: OpAdd, From: miniyaml.Null(), To: tv})
				}
			case diffpatch.DiffEqual:
				walk(changes, child, fv, tv)
			}
		}
	}
}

func walkSequence(changes *[]Change, path string, from, to []miniyaml.Value) {
	for i := range max(len(from), len(to)) {
		child := path + "[" + strconv.Itoa(i) + "]"
		if path == "." {
			child = ".[" + strconv.Itoa(i) + "]"
		}

		switch {
		case i >= len(to):
			*changes = append(*changes, Change{Path: child, Op: OpRemove, From: from[i], To: miniyaml.Null()})
		case i >= len(from):
			*changes = append(*changes, Change{Path: child, Op: OpAdd, From: miniyaml.Null(), To: to[i]})
		default:
			walk(changes, child, from[i], to[i])
		}
	}
}

// Equal reports whether a and b hold the same value. Mapping key order is
// ignored.
func Equal(a, b miniyaml.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}

	switch a.Kind() {
	case miniyaml.KindNull:
		return true
	case miniyaml.KindBool:
		x, _ := a.AsBool()
		y, _ := b.AsBool()

		return x == y
	case miniyaml.KindNumber:
		x, _ := a.AsNumber()
		y, _ := b.AsNumber()

		return x == y
	case miniyaml.KindString:
		x, _ := a.AsString()
		y, _ := b.AsString()

		return x == y
	case miniyaml.KindMapping:
		x, _ := a.AsMap()
		y, _ := b.AsMap()

		if x.Len() != y.Len() {
			return false
		}

		for k, xv := range x.All() {
			yv, ok := y.Get(k)
			if !ok || !Equal(xv, yv) {
				return false
			}
		}

		return true
	case miniyaml.KindSequence:
		x, _ := a.AsSlice()
		y, _ := b.AsSlice()

		if len(x) != len(y) {
			return false
		}

		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}

		return true
	}

	return false
}

func childPath(parent, key string) string {
	if !isIdent(key) {
		key = "[" + strconv.Quote(key) + "]"
		if parent == "." {
			return "." + key
		}

		return parent + key
	}

	if parent == "." {
		return "." + key
	}

	return parent + "." + key
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}

	return strings.IndexFunc(s, func(r rune) bool {
		return !(r == '_' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	}) < 0
}
