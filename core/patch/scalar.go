package patch

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"smr-checker/core/check"
)

// Descriptor identifies the mainline module build of a snapshot.
type Descriptor struct {
	// Type is "GO" or "non-GO".
	Type string `json:"type"`
	// Name is the module package name.
	Name string `json:"module_name"`
	// Version is the mainline module version name.
	Version string `json:"version"`
}

// MissingDescriptor is the descriptor of a snapshot without mainline information.
func MissingDescriptor() Descriptor {
	return Descriptor{Type: check.NotFound, Name: check.NotFound, Version: check.NotFound}
}

// IsNotFound reports whether the descriptor has no usable version.
func (d Descriptor) IsNotFound() bool {
	return check.IsNotFound(d.Version) || check.IsNotFound(d.Type)
}

// String renders "type/name@version".
func (d Descriptor) String() string {
	return fmt.Sprintf("%s/%s@%s", d.Type, d.Name, d.Version)
}

// CompareScalar requires two version-like strings to be equal after trimming
// surrounding whitespace. A missing value on either side fails.
func CompareScalar(mr, smr string) check.Outcome {
	switch {
	case check.IsNotFound(mr) && check.IsNotFound(smr):
		return check.Outcome{Result: check.Fail, Reason: "value not found in MR and SMR"}
	case check.IsNotFound(mr):
		return check.Outcome{Result: check.Fail, Reason: "value not found in MR"}
	case check.IsNotFound(smr):
		return check.Outcome{Result: check.Fail, Reason: "value not found in SMR"}
	}

	a := strings.TrimSpace(mr)
	b := strings.TrimSpace(smr)
	if a == b {
		return check.Outcome{Result: check.Pass}
	}
	return check.Outcome{Result: check.Fail, Reason: describeMismatch(a, b)}
}

// CompareDescriptor requires two mainline descriptors to match on type, name and version.
func CompareDescriptor(mr, smr Descriptor) check.Outcome {
	switch {
	case mr.IsNotFound() && smr.IsNotFound():
		return check.Outcome{Result: check.Fail, Reason: "mainline version not found in MR and SMR"}
	case mr.IsNotFound():
		return check.Outcome{Result: check.Fail, Reason: "mainline version not found in MR"}
	case smr.IsNotFound():
		return check.Outcome{Result: check.Fail, Reason: "mainline version not found in SMR"}
	}

	var reasons []string
	if mr.Type != smr.Type {
		reasons = append(reasons, fmt.Sprintf("type mismatch: MR %s, SMR %s", mr.Type, smr.Type))
	}
	if mr.Name != smr.Name {
		reasons = append(reasons, fmt.Sprintf("module mismatch: MR %s, SMR %s", mr.Name, smr.Name))
	}
	if mr.Version != smr.Version {
		reasons = append(reasons, fmt.Sprintf("version mismatch: MR %s, SMR %s", mr.Version, smr.Version))
	}

	if len(reasons) == 0 {
		return check.Outcome{Result: check.Pass}
	}
	return check.Outcome{Result: check.Fail, Reason: strings.Join(reasons, "; ")}
}

// describeMismatch locates the first differing character of two strings.
func describeMismatch(a, b string) string {
	ra, rb := []rune(a), []rune(b)
	pos := 0
	for pos < len(ra) && pos < len(rb) && ra[pos] == rb[pos] {
		pos++
	}

	reason := fmt.Sprintf("values differ at position %d", pos+1)
	if la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b); la != lb {
		reason += fmt.Sprintf(" (length MR %d, SMR %d)", la, lb)
	}
	return reason
}
