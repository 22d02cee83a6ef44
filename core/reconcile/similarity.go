package reconcile

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// MatchThreshold is the minimum similarity (exclusive) for the smart
// comparator to pair two records whose names differ.
const MatchThreshold = 0.5

const (
	nameWeight      = 0.3
	typeWeight      = 0.2
	availableWeight = 0.2
	sharedWeight    = 0.1
)

// NameSimilarity returns 1 - distance/maxLen over runes, so identical names
// score 1 and names with nothing in common score 0.
func NameSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}

// Similarity scores how likely two records describe the same item:
//
//	0.3 * name similarity
//	+0.2 when "type" is present in both and equal
//	+0.2 when "available" (or else "enabled") is present in both and equal
//	+0.1 per other shared field with equal value
//
// The total is capped at 1.
func Similarity(a, b Record) float64 {
	score := nameWeight * NameSimilarity(a.Name, b.Name)

	if equalPresent(a, b, "type") {
		score += typeWeight
	}

	availability := "available"
	if !a.fields.Has(availability) || !b.fields.Has(availability) {
		availability = "enabled"
	}
	if equalPresent(a, b, availability) {
		score += availableWeight
	}

	for _, key := range a.fields.Keys() {
		switch key {
		case "name", "type", "available", "enabled":
			continue
		}
		if equalPresent(a, b, key) {
			score += sharedWeight
		}
	}

	if score > 1 {
		score = 1
	}
	return score
}

func equalPresent(a, b Record, field string) bool {
	av, ok := a.Get(field)
	if !ok {
		return false
	}
	bv, ok := b.Get(field)
	if !ok {
		return false
	}
	return av.Equal(bv)
}
