package reconcile

import (
	"fmt"
	"strings"
)

// permissionPreview is how many permission names a summary spells out.
const permissionPreview = 3

// DiffFields compares the tracked fields of two records and returns one
// FieldDifference per mismatch, in tracked order. A field missing from a
// record compares as null.
//
// Lists of permission-like objects (every element a map with a string "name")
// are compared as sets of names, so reordering alone is not a difference.
func DiffFields(old, new Record, tracked []string) []FieldDifference {
	var diffs []FieldDifference
	seen := make(map[string]struct{}, len(tracked))

	for _, field := range tracked {
		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}

		ov := old.Value(field)
		nv := new.Value(field)

		if isPermissionPair(ov, nv) {
			if d, changed := diffPermissions(field, ov, nv); changed {
				diffs = append(diffs, d)
			}
			continue
		}

		if !ov.Equal(nv) {
			diffs = append(diffs, FieldDifference{Field: field, Old: ov, New: nv})
		}
	}

	return diffs
}

// diffAllFields compares every field present in either record.
func diffAllFields(old, new Record) []FieldDifference {
	return DiffFields(old, new, unionKeys(old, new))
}

// IsPermissionList reports whether v is a non-empty list whose elements are
// all maps carrying a string "name".
func IsPermissionList(v Value) bool {
	items := v.Items()
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		fields, ok := item.AsMap()
		if !ok {
			return false
		}
		if _, ok := fields.Value("name").AsString(); !ok {
			return false
		}
	}
	return true
}

func isEmptyList(v Value) bool {
	return v.IsNull() || (v.Kind() == KindList && len(v.Items()) == 0)
}

// isPermissionPair holds when at least one side is a permission list and the
// other side is a permission list or empty.
func isPermissionPair(a, b Value) bool {
	aPerm, bPerm := IsPermissionList(a), IsPermissionList(b)
	if !aPerm && !bPerm {
		return false
	}
	return (aPerm || isEmptyList(a)) && (bPerm || isEmptyList(b))
}

// PermissionNames returns the distinct permission names of a permission list in list order.
func PermissionNames(v Value) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, item := range v.Items() {
		fields, ok := item.AsMap()
		if !ok {
			continue
		}
		name, ok := fields.Value("name").AsString()
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// SummarizePermissions renders "<count> permissions: <first 3 names>...".
// The ellipsis is only added when names were left out.
func SummarizePermissions(names []string) string {
	if len(names) == 0 {
		return "0 permissions"
	}
	preview := names
	if len(preview) > permissionPreview {
		preview = preview[:permissionPreview]
	}
	s := fmt.Sprintf("%d permissions: %s", len(names), strings.Join(preview, ", "))
	if len(names) > permissionPreview {
		s += "..."
	}
	return s
}

func diffPermissions(field string, ov, nv Value) (FieldDifference, bool) {
	oldNames := PermissionNames(ov)
	newNames := PermissionNames(nv)

	if !symmetricDifference(oldNames, newNames) {
		return FieldDifference{}, false
	}

	return FieldDifference{
		Field:       field,
		Old:         String(SummarizePermissions(oldNames)),
		New:         String(SummarizePermissions(newNames)),
		Permissions: true,
	}, true
}

// symmetricDifference reports whether the two name sets differ.
func symmetricDifference(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, n := range a {
		set[n] = struct{}{}
	}
	for _, n := range b {
		if _, ok := set[n]; !ok {
			return true
		}
		delete(set, n)
	}
	return len(set) > 0
}
