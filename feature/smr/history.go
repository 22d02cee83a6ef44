package smr

import (
	"context"
	"errors"
	"fmt"

	"smr-checker/core/database"
	"smr-checker/core/reconcile"
	"smr-checker/feature/smr/models"

	"gorm.io/gorm"
)

// ErrHistoryDisabled is returned when no database is configured.
var ErrHistoryDisabled = errors.New("run history is disabled: no database connection")

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 500
)

// requiredRunColumns must exist in smr_runs after migration.
var requiredRunColumns = []string{"id", "created_at", "mr_label", "smr_label", "can_proceed", "fail_reasons"}

// History persists reconciliation runs.
type History struct {
	db *gorm.DB
}

// NewHistory wraps a database connection. A nil db yields a disabled history.
func NewHistory(db *gorm.DB) *History {
	return &History{db: db}
}

// Enabled reports whether a database is attached.
func (h *History) Enabled() bool {
	return h != nil && h.db != nil
}

// Migrate creates or updates the smr_runs table and verifies its columns.
func (h *History) Migrate() error {
	if !h.Enabled() {
		return ErrHistoryDisabled
	}

	if err := h.db.AutoMigrate(&models.Run{}); err != nil {
		return fmt.Errorf("failed to migrate run history: %w", err)
	}

	columns, err := database.GetTableColumns(h.db, models.Run{}.TableName())
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c.Field] = true
	}
	for _, name := range requiredRunColumns {
		if !present[name] {
			return fmt.Errorf("run history table is missing column %q", name)
		}
	}
	return nil
}

// Save stores a report summary and returns the stored run.
func (h *History) Save(ctx context.Context, report *Report) (*models.Run, error) {
	if !h.Enabled() {
		return nil, ErrHistoryDisabled
	}

	run := &models.Run{
		MRLabel:       report.MR.Label,
		SMRLabel:      report.SMR.Label,
		Reference:     report.Reference.Format("2006-01-02"),
		CanProceed:    report.Verdict.CanProceed,
		MRPatch:       report.MR.SecurityPatch,
		SMRPatch:      report.SMR.SecurityPatch,
		FeatureStatus: statusOf(report.Features),
		PackageStatus: statusOf(report.Packages),
	}
	if err := run.SetFailReasons(report.Verdict.FailReasons); err != nil {
		return nil, fmt.Errorf("failed to encode fail reasons: %w", err)
	}

	if err := h.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}
	return run, nil
}

// List returns the most recent runs, newest first.
func (h *History) List(ctx context.Context, limit int) ([]models.Run, error) {
	if !h.Enabled() {
		return nil, ErrHistoryDisabled
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	var runs []models.Run
	if err := h.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

func statusOf(r *reconcile.ComparisonResult) string {
	if r == nil {
		return "N/A"
	}
	return string(r.Status)
}
