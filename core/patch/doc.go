// Package patch validates security patch dates and version-like values
// between an MR (baseline) and an SMR (candidate) build.
//
// A patch date must be a strict YYYY-MM-DD calendar date inside a window
// around a reference date (by default 90 days behind to 30 days ahead), and
// the SMR date must be strictly later than the MR date. Version scalars and
// mainline module descriptors must be exactly equal, and a missing value
// never passes.
//
// # Usage
//
//	v := patch.NewValidator(patch.DefaultConfig())
//	res := v.CompareDates("2026-01-05", "2026-02-05", time.Now())
//	if !res.AllChecksPassed {
//	    fmt.Println(res.Message)
//	}
package patch
