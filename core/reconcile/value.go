package reconcile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"smr-checker/core/utils"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "null"
	}
}

// Value is a tagged union over the JSON value space.
// The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	list []Value
	m    *Fields
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a number. Integers and floats share one representation,
// so 1 and 1.0 are the same Value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Int wraps an integer as a Number.
func Int(n int) Value { return Number(float64(n)) }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// List wraps an ordered list of values.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

// Map wraps an ordered field map. A nil map becomes an empty one.
func Map(f *Fields) Value {
	if f == nil {
		f = NewFields()
	}
	return Value{kind: KindMap, m: f}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// Items returns the elements of a list value, or nil for any other kind.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.list
}

// AsMap returns the field map held by v.
func (v Value) AsMap() (*Fields, bool) { return v.m, v.kind == KindMap }

// Truthy interprets v as a flag: true booleans, the number 1 and the
// strings "1"/"true" are set, everything else is not.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n == 1
	case KindString:
		return utils.ToBool(v.s)
	default:
		return false
	}
}

// Equal reports deep structural equality. Numbers compare by numeric value
// and maps compare regardless of key order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindString:
		return v.s == o.s
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return v.m.Equal(o.m)
	}
	return false
}

// String renders v for humans: strings are printed raw, everything else as JSON.
func (v Value) String() string {
	if v.kind == KindString {
		return v.s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("<%s>", v.kind)
	}
	return string(b)
}

// MarshalJSON encodes v with map keys in insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return strconv.AppendBool(nil, v.b), nil
	case KindNumber:
		return json.Marshal(v.n)
	case KindString:
		return json.Marshal(v.s)
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindMap:
		return v.m.MarshalJSON()
	}
	return nil, fmt.Errorf("unknown value kind %d", v.kind)
}

// Fields is an insertion-ordered string-keyed map of Values.
// It is built once by a decoder and treated as read-only afterwards.
type Fields struct {
	keys   []string
	values map[string]Value
}

// NewFields returns an empty field map.
func NewFields() *Fields {
	return &Fields{values: make(map[string]Value)}
}

// FieldsOf builds a field map from a Go map, ordering keys alphabetically.
// It is mostly useful in tests.
func FieldsOf(m map[string]Value) *Fields {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	f := NewFields()
	for _, k := range keys {
		f.Set(k, m[k])
	}
	return f
}

// Set stores v under key. A repeated key keeps its first position and the last value.
func (f *Fields) Set(key string, v Value) *Fields {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = v
	return f
}

// Get returns the value stored under key.
func (f *Fields) Get(key string) (Value, bool) {
	if f == nil {
		return Null(), false
	}
	v, ok := f.values[key]
	return v, ok
}

// Value returns the value stored under key, or null.
func (f *Fields) Value(key string) Value {
	v, _ := f.Get(key)
	return v
}

// Has reports whether key is present.
func (f *Fields) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Keys returns a copy of the keys in insertion order.
func (f *Fields) Keys() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Len returns the number of keys.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Equal compares two field maps ignoring key order.
func (f *Fields) Equal(o *Fields) bool {
	if f.Len() != o.Len() {
		return false
	}
	for _, k := range f.Keys() {
		ov, ok := o.Get(k)
		if !ok {
			return false
		}
		fv, _ := f.Get(k)
		if !fv.Equal(ov) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := f.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
