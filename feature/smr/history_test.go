package smr

import (
	"context"
	"testing"
	"time"

	"smr-checker/core/database"
	"smr-checker/core/patch"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupHistoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func TestHistory(t *testing.T) {
	h := NewHistory(setupHistoryDB(t))
	require.True(t, h.Enabled())
	require.NoError(t, h.Migrate())

	pipeline := NewPipeline(patch.DefaultConfig())
	passing := pipeline.RunAt(loadDir(t, mrFiles()), loadDir(t, smrFiles()), testReference)

	failingFiles := smrFiles()
	delete(failingFiles, PackageFile)
	failing := pipeline.RunAt(loadDir(t, mrFiles()), loadDir(t, failingFiles), testReference)

	first, err := h.Save(context.Background(), passing)
	require.NoError(t, err)
	assert.Len(t, first.ID, 36)
	assert.Equal(t, "2026-03-15", first.Reference)
	assert.Equal(t, "PASS", first.PackageStatus)

	// created_at has to differ for a stable order
	time.Sleep(10 * time.Millisecond)

	second, err := h.Save(context.Background(), failing)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "N/A", second.PackageStatus)

	runs, err := h.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.False(t, runs[0].CanProceed)
	assert.NotEmpty(t, runs[0].Reasons())
	assert.True(t, runs[1].CanProceed)
	assert.Equal(t, []string{}, runs[1].Reasons())

	runs, err = h.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestHistory_Disabled(t *testing.T) {
	h := NewHistory(nil)
	assert.False(t, h.Enabled())
	assert.ErrorIs(t, h.Migrate(), ErrHistoryDisabled)

	_, err := h.List(context.Background(), 10)
	assert.ErrorIs(t, err, ErrHistoryDisabled)

	_, err = h.Save(context.Background(), &Report{})
	assert.ErrorIs(t, err, ErrHistoryDisabled)
}

func TestHistory_ListQuery(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "mr_label", "smr_label", "can_proceed", "fail_reasons"}).
		AddRow("b1c7", "bucket:b/mr", "bucket:b/smr", false, `["GMS version: value not found in SMR"]`)
	mock.ExpectQuery("SELECT \\* FROM `smr_runs` ORDER BY created_at DESC LIMIT \\?").
		WithArgs(maxHistoryLimit).
		WillReturnRows(rows)

	runs, err := NewHistory(db).List(context.Background(), 10_000)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, []string{"GMS version: value not found in SMR"}, runs[0].Reasons())
	assert.NoError(t, mock.ExpectationsWereMet())
}
