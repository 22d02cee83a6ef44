package reconcile

// rec builds a record whose "name" field matches its name, followed by the
// given key/value pairs in order.
func rec(name string, kv ...any) Record {
	f := NewFields().Set("name", String(name))
	for i := 0; i+1 < len(kv); i += 2 {
		f.Set(kv[i].(string), ParseValue(kv[i+1]))
	}
	return NewRecord(name, f)
}

// perms builds a permission list value.
func perms(names ...string) Value {
	items := make([]Value, 0, len(names))
	for _, n := range names {
		items = append(items, Map(NewFields().Set("name", String(n)).Set("granted", Bool(true))))
	}
	return List(items...)
}

func changeTypes(r *ComparisonResult) []ChangeType {
	out := make([]ChangeType, 0, len(r.Changes))
	for _, c := range r.Changes {
		out = append(out, c.Type)
	}
	return out
}

func changeNames(r *ComparisonResult) []string {
	out := make([]string, 0, len(r.Changes))
	for _, c := range r.Changes {
		out = append(out, c.Name)
	}
	return out
}
