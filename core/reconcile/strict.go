package reconcile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"smr-checker/core/check"

	"github.com/wI2L/jsondiff"
)

// StrictResult is the outcome of an order-sensitive, exact comparison of two record lists.
type StrictResult struct {
	// Identical is true when both lists serialize to the same bytes.
	Identical bool `json:"identical"`

	// Status is PASS iff Identical.
	Status check.Result `json:"status"`

	// OldCount is the number of records in the old list.
	OldCount int `json:"old_count"`

	// NewCount is the number of records in the new list.
	NewCount int `json:"new_count"`

	// Mismatches lists every index whose records differ.
	Mismatches []PositionMismatch `json:"mismatches,omitempty"`

	// Patch is the RFC 6902 patch turning the old list into the new one.
	Patch jsondiff.Patch `json:"patch,omitempty"`
}

// PositionMismatch describes the records found at one index of two lists.
// A missing side leaves its name empty.
type PositionMismatch struct {
	Index       int               `json:"index"`
	OldName     string            `json:"old_name,omitempty"`
	NewName     string            `json:"new_name,omitempty"`
	Differences []FieldDifference `json:"differences,omitempty"`
}

// StrictCompare compares two lists index by index with no rematching.
// An error is only returned when the patch cannot be computed.
func StrictCompare(old, new []Record) (*StrictResult, error) {
	result := &StrictResult{
		OldCount: len(old),
		NewCount: len(new),
	}

	if identical(old, new) {
		result.Identical = true
		result.Status = check.Pass
		return result, nil
	}
	result.Status = check.Fail

	for i := 0; i < len(old) || i < len(new); i++ {
		switch {
		case i >= len(old):
			result.Mismatches = append(result.Mismatches, PositionMismatch{Index: i, NewName: new[i].Name})
		case i >= len(new):
			result.Mismatches = append(result.Mismatches, PositionMismatch{Index: i, OldName: old[i].Name})
		default:
			diffs := diffAllFields(old[i], new[i])
			if old[i].Name == new[i].Name && len(diffs) == 0 {
				continue
			}
			result.Mismatches = append(result.Mismatches, PositionMismatch{
				Index:       i,
				OldName:     old[i].Name,
				NewName:     new[i].Name,
				Differences: diffs,
			})
		}
	}

	patch, err := jsondiff.Compare(emptyIfNil(old), emptyIfNil(new))
	if err != nil {
		return nil, fmt.Errorf("failed to compute strict patch: %w", err)
	}
	result.Patch = patch

	return result, nil
}

// identical reports whether both lists serialize to the same bytes with
// fields in their original order.
func identical(old, new []Record) bool {
	a, err := json.Marshal(emptyIfNil(old))
	if err != nil {
		return false
	}
	b, err := json.Marshal(emptyIfNil(new))
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}

func emptyIfNil(records []Record) []Record {
	if records == nil {
		return []Record{}
	}
	return records
}
