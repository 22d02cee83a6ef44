package cmd

import (
	"fmt"
	"io"
	"strings"

	"smr-checker/core/check"
	"smr-checker/core/patch"
	"smr-checker/core/verdict"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	passColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	failColor = color.New(color.FgRed, color.Bold).SprintFunc()
	dimColor  = color.New(color.FgHiBlack).SprintFunc()
)

func paintResult(r check.Result) string {
	if r.Passed() {
		return passColor(string(r))
	}
	return failColor(string(r))
}

// renderVerdict prints one row per check followed by the final decision.
func renderVerdict(w io.Writer, v verdict.Verdict) error {
	table := tablewriter.NewWriter(w)
	table.Header("Check", "Result", "Reasons")

	for _, e := range v.Checks {
		reasons := strings.Join(e.Reasons, "\n")
		if reasons == "" {
			reasons = dimColor("-")
		}
		if err := table.Append(e.Name, paintResult(e.Result), reasons); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if v.CanProceed {
		_, err := fmt.Fprintf(w, "\nVerdict: %s\n", passColor("CAN PROCEED"))
		return err
	}
	_, err := fmt.Fprintf(w, "\nVerdict: %s (%d reasons)\n", failColor("CANNOT PROCEED"), len(v.FailReasons))
	return err
}

// renderPatch prints the validation of both dates and their ordering.
func renderPatch(w io.Writer, c patch.Comparison) error {
	table := tablewriter.NewWriter(w)
	table.Header("Build", "Date", "Status", "Days Behind", "Message")

	for _, row := range []struct {
		label string
		v     patch.Validation
	}{
		{"MR", c.MR},
		{"SMR", c.SMR},
	} {
		delta := dimColor("-")
		if row.v.DayDelta != nil {
			delta = fmt.Sprint(*row.v.DayDelta)
		}
		status := passColor(string(row.v.Status))
		if !row.v.IsValid {
			status = failColor(string(row.v.Status))
		}
		if err := table.Append(row.label, row.v.Input, status, delta, row.v.Message); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nReference: %s  Ordering: %s  Result: %s\n",
		c.Reference.Format(patch.DateLayout), c.Ordering, paintResult(c.Result()))
	if err != nil {
		return err
	}
	for _, reason := range c.FailReasons() {
		if _, err := fmt.Fprintf(w, "  - %s\n", reason); err != nil {
			return err
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
