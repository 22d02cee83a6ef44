package cmd

import (
	"encoding/json"
	"fmt"

	"smr-checker/core/config"
	"smr-checker/feature/smr"

	"github.com/spf13/cobra"
)

var (
	patchReference string
	patchJSON      bool
)

// patchCmd compares two security patch levels without loading snapshots.
var patchCmd = &cobra.Command{
	Use:   "patch <mr-date> <smr-date>",
	Short: "Compare two security patch levels",
	Long: `Validates both YYYY-MM-DD security patch dates against the accepted window
(patch.ahead_days / patch.behind_days) and requires the SMR patch to be newer.

Example:
  patch 2026-02-05 2026-03-05 --reference 2026-03-15`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		svc := smr.NewService(nil, "", nil, nil, smr.Settings{Patch: cfg.Patch})
		result, err := svc.CheckPatch(smr.PatchRequest{MR: args[0], SMR: args[1], Reference: patchReference})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if patchJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
		} else if err := renderPatch(out, result); err != nil {
			return err
		}

		if !result.AllChecksPassed {
			return errCannotProceed
		}
		return nil
	},
}

func init() {
	patchCmd.Flags().StringVar(&patchReference, "reference", "", "Reference date YYYY-MM-DD (default today)")
	patchCmd.Flags().BoolVar(&patchJSON, "json", false, "Print the comparison as JSON")
	RootCmd.AddCommand(patchCmd)
}
