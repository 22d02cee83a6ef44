package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"smr-checker/core/reconcile"
	"smr-checker/feature/smr"

	"github.com/k0kubun/pp/v3"
	"go.uber.org/zap"
)

// Dumps every comparator's raw result for one record category of two local
// snapshots. Useful when a verdict looks wrong and the table output hides why.
func main() {
	category := flag.String("category", "feature", "feature or package")
	strict := flag.Bool("strict", false, "also run the strict comparator")
	flag.Parse()

	if flag.NArg() != 2 {
		log.Fatal("usage: debug_diff [-category feature|package] [-strict] <mr-dir> <smr-dir>")
	}

	ctx := context.Background()
	logger := zap.NewNop()

	mr, err := smr.LoadSnapshot(ctx, smr.NewDirSource(flag.Arg(0)), logger)
	if err != nil {
		log.Fatal(err)
	}
	candidate, err := smr.LoadSnapshot(ctx, smr.NewDirSource(flag.Arg(1)), logger)
	if err != nil {
		log.Fatal(err)
	}

	printer := pp.New()
	printer.WithLineInfo = false

	fmt.Println(mr.Describe())
	fmt.Println(candidate.Describe())

	var old, new []reconcile.Record
	switch *category {
	case "feature":
		old, new = mr.Features, candidate.Features
	case "package":
		old, new = mr.Packages, candidate.Packages
	default:
		log.Fatalf("unknown category %q", *category)
	}

	fmt.Println("=== Smart ===")
	printer.Println(reconcile.SmartCompare(old, new).Summary)

	fmt.Println("=== Keyed ===")
	keyed := reconcile.KeyedCompare(old, new, smr.PackageSpec.TrackedFields)
	printer.Println(keyed.Summary)
	for _, c := range keyed.Changes {
		if c.Type == reconcile.ChangeSame {
			continue
		}
		printer.Println(c.Type, c.Name, c.Differences)
	}

	if *strict {
		fmt.Println("=== Strict ===")
		res, err := reconcile.StrictCompare(old, new)
		if err != nil {
			log.Fatal(err)
		}
		printer.Println(res.Identical, len(res.Mismatches))
		printer.Println(res.Patch)
	}
}
