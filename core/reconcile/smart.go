package reconcile

import "smr-checker/core/check"

// SmartCompare classifies the records of two ordered lists as SAME, MOVED,
// MODIFIED, ADDED or REMOVED.
//
// Matching runs in phases, each only over records left unmatched by the
// previous one:
//  1. positional: same index, same name, no field differences => SAME
//  2. by name: first unmatched new record with the same name
//  3. by similarity: best scoring unmatched new record above MatchThreshold,
//     ties going to the lowest new index
//  4. leftovers: old => REMOVED, new => ADDED
//
// Phase 2 and 3 matches are MOVED when their fields are equal and MODIFIED
// otherwise. Lists that serialize identically short-circuit to all SAME with
// no changes listed.
func SmartCompare(old, new []Record) *ComparisonResult {
	result := &ComparisonResult{Changes: []Change{}}

	if identical(old, new) {
		result.Summary.Same = len(old)
		finish(result, len(old), len(new))
		return result
	}

	oldMatched := make([]bool, len(old))
	newMatched := make([]bool, len(new))

	// Phase A: positional
	for i := 0; i < len(old) && i < len(new); i++ {
		if old[i].Name != new[i].Name {
			continue
		}
		if len(diffAllFields(old[i], new[i])) > 0 {
			continue
		}
		oldMatched[i], newMatched[i] = true, true
		result.record(Change{
			Type:      ChangeSame,
			Name:      new[i].Name,
			OldRecord: recordPtr(old[i]),
			NewRecord: recordPtr(new[i]),
			OldIndex:  intPtr(i),
			NewIndex:  intPtr(i),
		})
	}

	// Phase B: name-keyed rematch
	for i := range old {
		if oldMatched[i] {
			continue
		}
		for j := range new {
			if newMatched[j] || old[i].Name != new[j].Name {
				continue
			}
			oldMatched[i], newMatched[j] = true, true
			result.record(matchedChange(old, new, i, j))
			break
		}
	}

	// Phase C: similarity rematch
	for i := range old {
		if oldMatched[i] {
			continue
		}
		best, bestScore := -1, 0.0
		for j := range new {
			if newMatched[j] {
				continue
			}
			if score := Similarity(old[i], new[j]); score > bestScore {
				best, bestScore = j, score
			}
		}
		if best < 0 || bestScore <= MatchThreshold {
			continue
		}
		oldMatched[i], newMatched[best] = true, true
		result.record(matchedChange(old, new, i, best))
	}

	// Phase D: leftovers
	for i := range old {
		if oldMatched[i] {
			continue
		}
		result.record(Change{
			Type:      ChangeRemoved,
			Name:      old[i].Name,
			OldRecord: recordPtr(old[i]),
			OldIndex:  intPtr(i),
		})
	}
	for j := range new {
		if newMatched[j] {
			continue
		}
		result.record(Change{
			Type:      ChangeAdded,
			Name:      new[j].Name,
			NewRecord: recordPtr(new[j]),
			NewIndex:  intPtr(j),
		})
	}

	finish(result, len(old), len(new))
	return result
}

// matchedChange builds the MOVED or MODIFIED change for a pair matched outside Phase A.
func matchedChange(old, new []Record, i, j int) Change {
	diffs := diffAllFields(old[i], new[j])
	change := Change{
		Type:      ChangeMoved,
		Name:      new[j].Name,
		OldRecord: recordPtr(old[i]),
		NewRecord: recordPtr(new[j]),
		OldIndex:  intPtr(i),
		NewIndex:  intPtr(j),
	}
	if len(diffs) > 0 {
		change.Type = ChangeModified
		change.Differences = diffs
	}
	return change
}

func finish(result *ComparisonResult, n, m int) {
	result.IsIdentical = result.Summary.Same == n && n == m
	result.Status = check.FromBool(result.IsIdentical)
}
