package reconcile

import "sort"

// indexedRecord remembers where a record sat in its list.
type indexedRecord struct {
	record Record
	index  int
}

// KeyedCompare joins two record lists by name and compares the tracked
// fields of every pair. Names are visited in sorted order. If a name repeats
// within one list the last occurrence wins. There is no MOVED
// classification because position plays no part in matching.
func KeyedCompare(old, new []Record, tracked []string) *ComparisonResult {
	result := &ComparisonResult{Changes: []Change{}}

	oldIndex := buildIndex(old)
	newIndex := buildIndex(new)

	// Build union of all names
	union := make(map[string]struct{}, len(oldIndex)+len(newIndex))
	for name := range oldIndex {
		union[name] = struct{}{}
	}
	for name := range newIndex {
		union[name] = struct{}{}
	}

	names := make([]string, 0, len(union))
	for name := range union {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		o, inOld := oldIndex[name]
		n, inNew := newIndex[name]

		switch {
		case inOld && inNew:
			change := Change{
				Type:      ChangeSame,
				Name:      name,
				OldRecord: recordPtr(o.record),
				NewRecord: recordPtr(n.record),
				OldIndex:  intPtr(o.index),
				NewIndex:  intPtr(n.index),
			}
			if diffs := DiffFields(o.record, n.record, tracked); len(diffs) > 0 {
				change.Type = ChangeModified
				change.Differences = diffs
			}
			result.record(change)
		case inNew:
			result.record(Change{
				Type:      ChangeAdded,
				Name:      name,
				NewRecord: recordPtr(n.record),
				NewIndex:  intPtr(n.index),
			})
		case inOld:
			result.record(Change{
				Type:      ChangeRemoved,
				Name:      name,
				OldRecord: recordPtr(o.record),
				OldIndex:  intPtr(o.index),
			})
		default:
			// unreachable: every name in the union came from one of the indices
			continue
		}
	}

	finish(result, len(names), len(names))
	return result
}

func buildIndex(records []Record) map[string]indexedRecord {
	index := make(map[string]indexedRecord, len(records))
	for i, r := range records {
		index[r.Name] = indexedRecord{record: r, index: i}
	}
	return index
}
