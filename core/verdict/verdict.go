package verdict

import (
	"fmt"
	"strings"

	"smr-checker/core/check"
	"smr-checker/core/patch"
	"smr-checker/core/reconcile"
)

// Entry is the outcome of one named check.
type Entry struct {
	// Name is the check name, e.g. "Security patch".
	Name string `json:"name"`

	// Result is PASS or FAIL.
	Result check.Result `json:"result"`

	// Reasons explain a FAIL. Empty for PASS.
	Reasons []string `json:"reasons,omitempty"`
}

// Verdict is the final can-proceed decision.
type Verdict struct {
	// CanProceed is true when every check passed.
	CanProceed bool `json:"can_proceed"`

	// Checks holds every check in evaluation order.
	Checks []Entry `json:"checks"`

	// FailReasons lists "<check>: <reason>" for every failure, without
	// duplicates, in order of first occurrence.
	FailReasons []string `json:"fail_reasons"`
}

// Check looks up the result of a named check.
func (v Verdict) Check(name string) (check.Result, bool) {
	for _, e := range v.Checks {
		if e.Name == name {
			return e.Result, true
		}
	}
	return "", false
}

// Aggregator collects named check outcomes into a Verdict.
// It is not safe for concurrent use; create one per reconciliation run.
type Aggregator struct {
	entries []Entry
	index   map[string]int
}

// New creates an empty aggregator.
func New() *Aggregator {
	return &Aggregator{index: make(map[string]int)}
}

// Add records a check outcome. Adding a name twice replaces the earlier
// outcome but keeps its position.
func (a *Aggregator) Add(name string, result check.Result, reasons ...string) {
	entry := Entry{Name: name, Result: result}
	if result != check.Pass {
		entry.Result = check.Fail
		entry.Reasons = nonEmpty(reasons)
		if len(entry.Reasons) == 0 {
			entry.Reasons = []string{"check failed"}
		}
	}

	if i, ok := a.index[name]; ok {
		a.entries[i] = entry
		return
	}
	a.index[name] = len(a.entries)
	a.entries = append(a.entries, entry)
}

// AddOutcome records a scalar or tuple check outcome.
func (a *Aggregator) AddOutcome(name string, o check.Outcome) {
	a.Add(name, o.Result, o.Reason)
}

// AddPatch records a security patch comparison.
func (a *Aggregator) AddPatch(name string, c patch.Comparison) {
	a.Add(name, c.Result(), c.FailReasons()...)
}

// AddComparison records a record-list comparison by its raw status.
func (a *Aggregator) AddComparison(name string, r *reconcile.ComparisonResult) {
	if r == nil {
		a.Add(name, check.Fail, "comparison unavailable")
		return
	}
	if r.Status == check.Pass {
		a.Add(name, check.Pass)
		return
	}
	a.Add(name, check.Fail, describeSummary(r.Summary))
}

// AddPackages records a package comparison under the package rule instead of
// its raw status.
func (a *Aggregator) AddPackages(name string, r *reconcile.ComparisonResult, rule PackageRule) {
	if r == nil {
		a.Add(name, check.Fail, "comparison unavailable")
		return
	}
	result, reasons := rule.Evaluate(r)
	a.Add(name, result, reasons...)
}

// Verdict builds the final decision from everything added so far.
func (a *Aggregator) Verdict() Verdict {
	v := Verdict{
		CanProceed:  true,
		Checks:      make([]Entry, len(a.entries)),
		FailReasons: []string{},
	}
	copy(v.Checks, a.entries)

	seen := make(map[string]struct{})
	for _, e := range a.entries {
		if e.Result == check.Pass {
			continue
		}
		v.CanProceed = false
		for _, reason := range e.Reasons {
			line := e.Name + ": " + reason
			if _, dup := seen[line]; dup {
				continue
			}
			seen[line] = struct{}{}
			v.FailReasons = append(v.FailReasons, line)
		}
	}

	return v
}

func describeSummary(s reconcile.Summary) string {
	var parts []string
	for _, p := range []struct {
		label string
		count int
	}{
		{"added", s.Added},
		{"removed", s.Removed},
		{"modified", s.Modified},
		{"moved", s.Moved},
	} {
		if p.count > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", p.count, p.label))
		}
	}
	if len(parts) == 0 {
		return "records differ"
	}
	return "records differ: " + strings.Join(parts, ", ")
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
