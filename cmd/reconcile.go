package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"smr-checker/core/config"
	"smr-checker/core/database"
	"smr-checker/core/logger"
	"smr-checker/core/storage"
	"smr-checker/feature/smr"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// errCannotProceed makes the process exit non-zero when any check fails.
var errCannotProceed = errors.New("SMR cannot proceed")

var (
	// Flags for the reconcile command
	reconcileMR        string
	reconcileSMR       string
	reconcileBucket    bool
	reconcileReference string
	reconcileJSON      bool
	reconcileFull      bool
	reconcileSave      bool
	reconcilePublish   bool
)

// reconcileCmd compares an SMR snapshot against its MR baseline.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile an SMR snapshot against its MR baseline",
	Long: `Runs every check (security patch, base OS fingerprint, GMS version,
mainline train, feature and package deviceinfo) and prints the verdict.

Snapshots are local directories by default, or bucket prefixes with --bucket.
The command exits with status 1 when the SMR cannot proceed.

Examples:
  # Compare two unpacked CTS result folders
  reconcile --mr ./results/mr --smr ./results/smr

  # Compare bucket prefixes against a fixed reference date
  reconcile --bucket --mr builds/AP1A --smr builds/AP2A --reference 2026-03-15

  # Full text report, stored in the run history and published to the bucket
  reconcile --bucket --mr builds/AP1A --smr builds/AP2A --full --save --publish`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileMR, "mr", "", "MR snapshot directory or bucket prefix")
	reconcileCmd.Flags().StringVar(&reconcileSMR, "smr", "", "SMR snapshot directory or bucket prefix")
	reconcileCmd.Flags().BoolVar(&reconcileBucket, "bucket", false, "Read snapshots from the configured bucket")
	reconcileCmd.Flags().StringVar(&reconcileReference, "reference", "", "Reference date YYYY-MM-DD (default today)")
	reconcileCmd.Flags().BoolVar(&reconcileJSON, "json", false, "Print the full report as JSON")
	reconcileCmd.Flags().BoolVar(&reconcileFull, "full", false, "Print the full text report before the verdict")
	reconcileCmd.Flags().BoolVar(&reconcileSave, "save", false, "Store the run in the history database")
	reconcileCmd.Flags().BoolVar(&reconcilePublish, "publish", false, "Upload the JSON report to the bucket")
	_ = reconcileCmd.MarkFlagRequired("mr")
	_ = reconcileCmd.MarkFlagRequired("smr")

	RootCmd.AddCommand(reconcileCmd)
}

// newCLIService wires the service the way the server does, with local
// directories allowed. Storage and database are optional for the CLI.
func newCLIService(cfg *config.Config, l *zap.Logger, needStorage bool) (*smr.Service, error) {
	var store storage.Client
	if needStorage {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		store = client
	}

	var db *gorm.DB
	if cfg.Database.Enabled() {
		conn, err := database.Connect(cfg.Database)
		if err != nil {
			l.Warn("Optional database connection failed", zap.Error(err))
		} else if err := smr.NewHistory(conn).Migrate(); err != nil {
			l.Warn("Run history unavailable", zap.Error(err))
		} else {
			db = conn
		}
	}

	return smr.NewService(store, cfg.Storage.Bucket, l, db, smr.Settings{
		Patch:    cfg.Patch,
		AllowDir: true,
	}), nil
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	svc, err := newCLIService(cfg, l, reconcileBucket || reconcilePublish)
	if err != nil {
		return err
	}

	source := smr.SourceDir
	if reconcileBucket {
		source = smr.SourceBucket
	}

	l.Info("Starting reconciliation", zap.String("mr", reconcileMR), zap.String("smr", reconcileSMR), zap.String("source", source))

	report, err := svc.Reconcile(ctx, smr.ReconcileRequest{
		MR:        reconcileMR,
		SMR:       reconcileSMR,
		Source:    source,
		Reference: reconcileReference,
		Save:      reconcileSave,
		Publish:   reconcilePublish,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if reconcileJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	} else {
		if reconcileFull {
			fmt.Fprintln(out, report.Text())
		}
		if err := renderVerdict(out, report.Verdict); err != nil {
			return err
		}
	}

	if report.RunID != "" {
		l.Info("Run stored", zap.String("run_id", report.RunID))
	}
	if report.PublishedTo != "" {
		l.Info("Report published", zap.String("key", report.PublishedTo))
	}

	if !report.Verdict.CanProceed {
		for _, reason := range report.Verdict.FailReasons {
			fmt.Fprintf(os.Stderr, "  - %s\n", reason)
		}
		return errCannotProceed
	}
	return nil
}
