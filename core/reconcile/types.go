package reconcile

import "smr-checker/core/check"

// ChangeType classifies how a record changed between the old and new snapshot.
type ChangeType string

const (
	// ChangeSame means the record is at the same position with identical fields.
	ChangeSame ChangeType = "same"
	// ChangeMoved means the record changed position but not content.
	// Only the ordered comparator produces it.
	ChangeMoved ChangeType = "moved"
	// ChangeModified means a matched record has field differences.
	ChangeModified ChangeType = "modified"
	// ChangeAdded means the record exists only in the new snapshot.
	ChangeAdded ChangeType = "added"
	// ChangeRemoved means the record exists only in the old snapshot.
	ChangeRemoved ChangeType = "removed"
)

// FieldDifference describes one mismatching field of a matched record pair.
type FieldDifference struct {
	// Field is the field key.
	Field string `json:"field"`

	// Old is the value in the old record, null when absent.
	Old Value `json:"old"`

	// New is the value in the new record, null when absent.
	New Value `json:"new"`

	// Permissions marks a difference computed on a permission list.
	// Old and New then hold "<count> permissions: ..." summaries.
	Permissions bool `json:"permissions,omitempty"`
}

// Change is one classified record transition.
type Change struct {
	// Type is the change classification.
	Type ChangeType `json:"type"`

	// Name is the record name (the new record's name for matched pairs).
	Name string `json:"name"`

	// OldRecord is nil for ADDED changes.
	OldRecord *Record `json:"old_record,omitempty"`

	// NewRecord is nil for REMOVED changes.
	NewRecord *Record `json:"new_record,omitempty"`

	// OldIndex is the position in the old list, nil for ADDED changes.
	OldIndex *int `json:"old_index,omitempty"`

	// NewIndex is the position in the new list, nil for REMOVED changes.
	NewIndex *int `json:"new_index,omitempty"`

	// Differences lists mismatching fields for MODIFIED changes.
	Differences []FieldDifference `json:"differences,omitempty"`
}

// HasPermissionDifference reports whether any difference was computed on a permission list.
func (c Change) HasPermissionDifference() bool {
	for _, d := range c.Differences {
		if d.Permissions {
			return true
		}
	}
	return false
}

// Summary holds per-type change counts.
type Summary struct {
	Same     int `json:"same"`
	Moved    int `json:"moved"`
	Modified int `json:"modified"`
	Added    int `json:"added"`
	Removed  int `json:"removed"`
}

// Count returns the tally for one change type.
func (s Summary) Count(t ChangeType) int {
	switch t {
	case ChangeSame:
		return s.Same
	case ChangeMoved:
		return s.Moved
	case ChangeModified:
		return s.Modified
	case ChangeAdded:
		return s.Added
	case ChangeRemoved:
		return s.Removed
	}
	return 0
}

func (s *Summary) add(t ChangeType) {
	switch t {
	case ChangeSame:
		s.Same++
	case ChangeMoved:
		s.Moved++
	case ChangeModified:
		s.Modified++
	case ChangeAdded:
		s.Added++
	case ChangeRemoved:
		s.Removed++
	}
}

// ComparisonResult is the output of one comparator run over two record lists.
// Every run returns a fresh instance; comparators keep no state between calls.
type ComparisonResult struct {
	// IsIdentical is true when every record is SAME.
	IsIdentical bool `json:"is_identical"`

	// Status is PASS iff IsIdentical.
	Status check.Result `json:"status"`

	// Summary tallies changes by type.
	Summary Summary `json:"summary"`

	// Changes lists the classified transitions in emission order.
	Changes []Change `json:"changes"`
}

// ChangesOf returns the changes of the given type in emission order.
func (r *ComparisonResult) ChangesOf(t ChangeType) []Change {
	var out []Change
	for _, c := range r.Changes {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

func (r *ComparisonResult) record(c Change) {
	r.Changes = append(r.Changes, c)
	r.Summary.add(c.Type)
}

// Mode selects which comparator a Spec runs.
type Mode string

const (
	// ModeOrdered runs the position-aware smart comparator.
	ModeOrdered Mode = "ordered"
	// ModeKeyed runs the name-indexed dictionary-join comparator.
	ModeKeyed Mode = "keyed"
)

// Spec describes how one record category is compared.
type Spec struct {
	// Category is the display name of the category, e.g. "feature".
	Category string

	// ListKey is the document key holding the record list, e.g. "package".
	ListKey string

	// Mode selects the comparator.
	Mode Mode

	// TrackedFields is the field allow-list for ModeKeyed.
	TrackedFields []string
}

// Compare runs the comparator selected by the spec.
func (s *Spec) Compare(old, new []Record) *ComparisonResult {
	if s.Mode == ModeKeyed {
		return KeyedCompare(old, new, s.TrackedFields)
	}
	return SmartCompare(old, new)
}

func intPtr(i int) *int {
	return &i
}

func recordPtr(r Record) *Record {
	return &r
}
