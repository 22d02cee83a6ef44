// Package reconcile compares two snapshots of named records and classifies
// every record as SAME, MOVED, MODIFIED, ADDED or REMOVED.
//
// # Record Model
//
// A Record is a name plus an insertion-ordered field map (Fields) of Values.
// Value is a tagged union over null, bool, number, string, list and map.
// Numbers share one representation, so 1 and 1.0 compare equal. DecodeRecords
// builds records from a JSON document while keeping key order.
//
// # Comparators
//
//   - StrictCompare: exact, order-sensitive comparison with an RFC 6902 patch.
//   - SmartCompare: position-aware matching (positional, by name, by
//     similarity) for lists where order matters, such as device features.
//   - KeyedCompare: name-indexed join over an explicit field allow-list for
//     lists where order is meaningless, such as installed packages.
//
// All comparators are pure. Each call returns a fresh ComparisonResult and
// never mutates its inputs, so independent comparisons may run concurrently.
//
// # Usage Example
//
//	oldFeatures, err := reconcile.DecodeRecords(oldDoc, "feature")
//	newFeatures, err := reconcile.DecodeRecords(newDoc, "feature")
//
//	result := reconcile.SmartCompare(oldFeatures, newFeatures)
//	fmt.Println(result.Status, result.Summary.Added, result.Summary.Removed)
package reconcile
