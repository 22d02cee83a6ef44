package reconcile

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/7sDream/geko"
)

// ErrListNotFound is returned by DecodeRecords when the document has no list under the requested key.
var ErrListNotFound = errors.New("record list not found")

// Record is one named item of a snapshot, such as a feature or an installed package.
type Record struct {
	// Name identifies the record across snapshots.
	Name string

	fields *Fields
}

// NewRecord builds a record over the given fields.
func NewRecord(name string, fields *Fields) Record {
	if fields == nil {
		fields = NewFields()
	}
	return Record{Name: name, fields: fields}
}

// Get returns the value of a field.
func (r Record) Get(field string) (Value, bool) {
	return r.fields.Get(field)
}

// Value returns the value of a field, or null when absent.
func (r Record) Value(field string) Value {
	v, _ := r.fields.Get(field)
	return v
}

// Fields returns the record's field map. Callers must not modify it.
func (r Record) Fields() *Fields {
	return r.fields
}

// MarshalJSON encodes the record as its field object.
func (r Record) MarshalJSON() ([]byte, error) {
	return r.fields.MarshalJSON()
}

// unionKeys returns every field key present in either record, sorted.
func unionKeys(a, b Record) []string {
	seen := make(map[string]struct{}, a.fields.Len()+b.fields.Len())
	for _, k := range a.fields.Keys() {
		seen[k] = struct{}{}
	}
	for _, k := range b.fields.Keys() {
		seen[k] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseValue converts a decoded JSON value into a Value. It accepts the
// order-preserving shapes produced by geko as well as plain encoding/json shapes.
func ParseValue(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case bool:
		return Bool(v)
	case float64:
		return Number(v)
	case float32:
		return Number(float64(v))
	case int:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil || math.IsInf(f, 0) {
			return String(v.String())
		}
		return Number(f)
	case string:
		return String(v)
	case geko.ObjectItems:
		keys := v.Keys()
		vals := v.Values()
		f := NewFields()
		for i := range keys {
			f.Set(keys[i], ParseValue(vals[i]))
		}
		return Map(f)
	case geko.Array:
		items := make([]Value, 0, len(v.List))
		for _, item := range v.List {
			items = append(items, ParseValue(item))
		}
		return List(items...)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		f := NewFields()
		for _, k := range keys {
			f.Set(k, ParseValue(v[k]))
		}
		return Map(f)
	case []any:
		items := make([]Value, 0, len(v))
		for _, item := range v {
			items = append(items, ParseValue(item))
		}
		return List(items...)
	default:
		return String(fmt.Sprint(v))
	}
}

// DecodeValue parses a JSON document keeping object key order.
func DecodeValue(data []byte) (Value, error) {
	raw, err := geko.JSONUnmarshal(data)
	if err != nil {
		return Null(), fmt.Errorf("failed to decode json: %w", err)
	}
	return ParseValue(raw), nil
}

// DecodeRecords parses a JSON document and returns the records stored in the
// list under listKey. Elements without a string "name" field are named
// "unnamed_<index>". A missing key yields ErrListNotFound.
func DecodeRecords(data []byte, listKey string) ([]Record, error) {
	doc, err := DecodeValue(data)
	if err != nil {
		return nil, err
	}

	root, ok := doc.AsMap()
	if !ok {
		return nil, fmt.Errorf("failed to decode records: document root is %s, want map", doc.Kind())
	}

	list, ok := root.Get(listKey)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrListNotFound, listKey)
	}

	return RecordsFromValue(list)
}

// RecordsFromValue converts a list of objects into records.
func RecordsFromValue(list Value) ([]Record, error) {
	if list.Kind() != KindList {
		return nil, fmt.Errorf("failed to decode records: got %s, want list", list.Kind())
	}

	records := make([]Record, 0, len(list.Items()))
	for i, item := range list.Items() {
		fields, ok := item.AsMap()
		if !ok {
			return nil, fmt.Errorf("failed to decode records: element %d is %s, want map", i, item.Kind())
		}
		name, ok := fields.Value("name").AsString()
		if !ok || name == "" {
			name = "unnamed_" + strconv.Itoa(i)
		}
		records = append(records, NewRecord(name, fields))
	}
	return records, nil
}
