package check

import "strings"

// Result is the outcome of a single named check.
type Result string

const (
	Pass Result = "PASS"
	Fail Result = "FAIL"
)

// NotFound is the sentinel extractors emit when a value is missing from a snapshot.
const NotFound = "not found"

// FromBool maps true to Pass and false to Fail.
func FromBool(ok bool) Result {
	if ok {
		return Pass
	}
	return Fail
}

// Passed reports whether the result is Pass.
func (r Result) Passed() bool {
	return r == Pass
}

// IsNotFound reports whether v is empty or the not-found sentinel.
func IsNotFound(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, NotFound)
}

// Outcome pairs a Result with a human-readable reason for a failure.
type Outcome struct {
	Result Result `json:"result"`
	Reason string `json:"reason,omitempty"`
}

// Passed reports whether the outcome result is Pass.
func (o Outcome) Passed() bool {
	return o.Result.Passed()
}
