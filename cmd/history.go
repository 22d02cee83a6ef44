package cmd

import (
	"fmt"
	"strings"

	"smr-checker/core/config"
	"smr-checker/core/database"
	"smr-checker/core/logger"
	"smr-checker/feature/smr"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd lists stored reconciliation runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored reconciliation runs",
	Long:  `Lists the most recent runs stored with "reconcile --save". Requires database.driver to be set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if !cfg.Database.Enabled() {
			return smr.ErrHistoryDisabled
		}

		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		history := smr.NewHistory(db)
		if err := history.Migrate(); err != nil {
			return err
		}

		runs, err := history.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("Run", "Created", "MR", "SMR", "Reference", "Verdict", "Reasons")
		for _, r := range runs {
			result := passColor("PASS")
			if !r.CanProceed {
				result = failColor("FAIL")
			}
			if err := table.Append(
				shortID(r.ID),
				r.CreatedAt.Format("2006-01-02 15:04"),
				r.MRLabel,
				r.SMRLabel,
				r.Reference,
				result,
				strings.Join(r.Reasons(), "\n"),
			); err != nil {
				return err
			}
		}
		return table.Render()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to show")
	RootCmd.AddCommand(historyCmd)
}
