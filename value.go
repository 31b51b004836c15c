package miniyaml

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strconv"
)

// Kind identifies which variant a [Value] holds.
type Kind uint8

const (
	// KindNull is the null value.
	KindNull Kind = iota
	// KindBool is a boolean.
	KindBool
	// KindNumber is a finite float64.
	KindNumber
	// KindString is a string.
	KindString
	// KindMapping is an ordered [*Map].
	KindMapping
	// KindSequence is an ordered list of values.
	KindSequence
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a node of a parsed document. The zero Value is null.
//
// Callers switch on [Value.Kind] and use the matching accessor; accessors
// for other kinds report ok == false.
type Value struct {
	mapping *Map
	str     string
	items   []Value
	number  float64
	kind    Kind
	boolean bool
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, number: f}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Mapping returns a mapping value backed by m. A nil m is an empty mapping.
func Mapping(m *Map) Value {
	if m == nil {
		m = NewMap()
	}

	return Value{kind: KindMapping, mapping: m}
}

// Sequence returns a sequence value holding items.
func Sequence(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}

	return Value{kind: KindSequence, items: items}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, bool) {
	return v.number, v.kind == KindNumber
}

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsMap returns the mapping held by v.
func (v Value) AsMap() (*Map, bool) {
	return v.mapping, v.kind == KindMapping
}

// AsSlice returns the items held by v.
func (v Value) AsSlice() ([]Value, bool) {
	return v.items, v.kind == KindSequence
}

// Interface converts v into plain Go values: nil, bool, float64, string,
// map[string]any and []any. Mapping order is lost.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boolean
	case KindNumber:
		return v.number
	case KindString:
		return v.str
	case KindMapping:
		out := make(map[string]any, v.mapping.Len())
		for k, child := range v.mapping.All() {
			out[k] = child.Interface()
		}

		return out
	case KindSequence:
		out := make([]any, len(v.items))
		for i, child := range v.items {
			out[i] = child.Interface()
		}

		return out
	}

	panic(fmt.Sprintf("miniyaml: unknown kind %d", v.kind))
}

// MarshalJSON implements [json.Marshaler]. Mapping keys are written in
// insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	err := v.appendJSON(&buf)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (v Value) appendJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.boolean))
	case KindNumber, KindString:
		b, err := json.Marshal(v.Interface())
		if err != nil {
			return err
		}

		buf.Write(b)
	case KindMapping:
		return v.mapping.appendJSON(buf)
	case KindSequence:
		buf.WriteByte('[')

		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}

			err := item.appendJSON(buf)
			if err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	}

	return nil
}

// Map is an insertion-ordered string-keyed mapping.
//
// Setting an existing key replaces its value and keeps its original
// position.
type Map struct {
	values map[string]Value
	keys   []string
}

// NewMap returns an empty [Map].
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// Set stores v under key. The zero Map is ready to use.
func (m *Map) Set(key string, v Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}

	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = v
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}

	v, ok := m.values[key]

	return v, ok
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}

	return slices.Clone(m.keys)
}

// All iterates over the entries in insertion order.
func (m *Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if m == nil {
			return
		}

		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// MarshalJSON implements [json.Marshaler], keeping key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	err := m.appendJSON(&buf)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (m *Map) appendJSON(buf *bytes.Buffer) error {
	buf.WriteByte('{')

	i := 0
	for k, v := range m.All() {
		if i > 0 {
			buf.WriteByte(',')
		}

		i++

		key, err := json.Marshal(k)
		if err != nil {
			return err
		}

		buf.Write(key)
		buf.WriteByte(':')

		err = v.appendJSON(buf)
		if err != nil {
			return err
		}
	}

	buf.WriteByte('}')

	return nil
}
