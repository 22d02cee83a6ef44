package smr

import (
	"fmt"
	"strings"

	"smr-checker/core/check"
	"smr-checker/core/reconcile"
)

const ruleWidth = 70

// Text renders the report as plain text.
func (r *Report) Text() string {
	var b strings.Builder
	rule := strings.Repeat("=", ruleWidth)
	thin := strings.Repeat("-", ruleWidth)

	fmt.Fprintf(&b, "SMR reconciliation report\n%s\n", rule)
	fmt.Fprintf(&b, "Reference date: %s\n", r.Reference.Format("2006-01-02"))
	fmt.Fprintf(&b, "MR:  %s\n", r.MR.Describe())
	fmt.Fprintf(&b, "SMR: %s\n%s\n", r.SMR.Describe(), thin)

	fmt.Fprintf(&b, "Security patch: MR %s (%s), SMR %s (%s), ordering %s\n",
		r.SecurityPatch.MR.Input, r.SecurityPatch.MR.Status,
		r.SecurityPatch.SMR.Input, r.SecurityPatch.SMR.Status,
		r.SecurityPatch.Ordering)
	writeOutcome(&b, "Fingerprint", r.MR.Fingerprint, r.SMR.BaseOS, r.Fingerprint)
	writeOutcome(&b, "GMS version", r.MR.GMSVersion, r.SMR.GMSVersion, r.GMSVersion)
	writeOutcome(&b, "Mainline", r.MR.Mainline.String(), r.SMR.Mainline.String(), r.Mainline)
	b.WriteString(thin + "\n")

	writeComparison(&b, "Features", r.Features)
	if r.FeaturesStrict != nil && !r.FeaturesStrict.Identical {
		fmt.Fprintf(&b, "  strict: %d positional mismatches, %d patch operations\n",
			len(r.FeaturesStrict.Mismatches), len(r.FeaturesStrict.Patch))
	}
	writeComparison(&b, "Packages", r.Packages)
	b.WriteString(rule + "\n")

	for _, e := range r.Verdict.Checks {
		fmt.Fprintf(&b, "[%s] %s\n", e.Result, e.Name)
	}
	if r.Verdict.CanProceed {
		b.WriteString("\nVERDICT: can proceed\n")
	} else {
		b.WriteString("\nVERDICT: cannot proceed\n")
		for _, reason := range r.Verdict.FailReasons {
			fmt.Fprintf(&b, "  - %s\n", reason)
		}
	}

	return b.String()
}

func writeOutcome(b *strings.Builder, label, mr, smr string, o check.Outcome) {
	fmt.Fprintf(b, "%s: [%s] MR %s | SMR %s\n", label, o.Result, mr, smr)
	if o.Reason != "" {
		fmt.Fprintf(b, "  %s\n", o.Reason)
	}
}

func writeComparison(b *strings.Builder, label string, r *reconcile.ComparisonResult) {
	if r == nil {
		fmt.Fprintf(b, "%s: unavailable\n", label)
		return
	}
	s := r.Summary
	fmt.Fprintf(b, "%s: [%s] same %d, moved %d, modified %d, added %d, removed %d\n",
		label, r.Status, s.Same, s.Moved, s.Modified, s.Added, s.Removed)

	for _, c := range r.Changes {
		if c.Type == reconcile.ChangeSame {
			continue
		}
		fmt.Fprintf(b, "  %-8s %s\n", strings.ToUpper(string(c.Type)), c.Name)
		for _, d := range c.Differences {
			fmt.Fprintf(b, "           %s: %s -> %s\n", d.Field, d.Old, d.New)
		}
	}
}
