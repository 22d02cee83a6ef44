package smr

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"smr-checker/core/patch"
	"smr-checker/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dirSettings() Settings {
	return Settings{Patch: patch.DefaultConfig(), AllowDir: true}
}

func TestService_ReconcileDir(t *testing.T) {
	svc := NewService(nil, "", zap.NewNop(), nil, dirSettings())

	report, err := svc.Reconcile(context.Background(), ReconcileRequest{
		MR:        writeSnapshot(t, mrFiles()),
		SMR:       writeSnapshot(t, smrFiles()),
		Source:    SourceDir,
		Reference: "2026-03-15",
		Save:      true,
	})
	require.NoError(t, err)
	assert.True(t, report.Verdict.CanProceed, report.Verdict.FailReasons)
	assert.Empty(t, report.RunID, "history disabled")
}

func TestService_ReconcileSaves(t *testing.T) {
	svc := NewService(nil, "", zap.NewNop(), setupHistoryDB(t), dirSettings())
	require.NoError(t, svc.History().Migrate())

	report, err := svc.Reconcile(context.Background(), ReconcileRequest{
		MR:        writeSnapshot(t, mrFiles()),
		SMR:       writeSnapshot(t, smrFiles()),
		Source:    SourceDir,
		Reference: "2026-03-15",
		Save:      true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)

	runs, err := svc.ListRuns(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, report.RunID, runs[0].ID)
}

func TestService_ReconcileErrors(t *testing.T) {
	mr := writeSnapshot(t, mrFiles())
	unrelated := writeSnapshot(t, map[string]string{"README.txt": "logs only"})

	tests := []struct {
		name     string
		settings Settings
		req      ReconcileRequest
		target   error
	}{
		{
			name:     "Bad reference",
			settings: dirSettings(),
			req:      ReconcileRequest{MR: mr, SMR: mr, Source: SourceDir, Reference: "15/03/2026"},
			target:   ErrInvalidRequest,
		},
		{
			name:     "Missing location",
			settings: dirSettings(),
			req:      ReconcileRequest{MR: mr, Source: SourceDir},
			target:   ErrInvalidRequest,
		},
		{
			name:     "Directories not allowed",
			settings: Settings{Patch: patch.DefaultConfig()},
			req:      ReconcileRequest{MR: mr, SMR: mr, Source: SourceDir},
			target:   ErrInvalidRequest,
		},
		{
			name:     "Unknown source",
			settings: dirSettings(),
			req:      ReconcileRequest{MR: mr, SMR: mr, Source: "ftp"},
			target:   ErrInvalidRequest,
		},
		{
			name:     "Bucket without storage",
			settings: dirSettings(),
			req:      ReconcileRequest{MR: "mr", SMR: "smr"},
			target:   ErrInvalidRequest,
		},
		{
			name:     "Missing snapshot",
			settings: dirSettings(),
			req:      ReconcileRequest{MR: mr, SMR: filepath.Join(mr, "missing"), Source: SourceDir},
			target:   ErrSnapshotNotFound,
		},
		{
			name:     "Root without deviceinfo files",
			settings: dirSettings(),
			req:      ReconcileRequest{MR: mr, SMR: unrelated, Source: SourceDir},
			target:   ErrSnapshotNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(nil, "", zap.NewNop(), nil, tt.settings)
			_, err := svc.Reconcile(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

// mockBucketSnapshot serves files under prefix from a mocked bucket.
func mockBucketSnapshot(m *mocks.Client, prefix string, files map[string]string) {
	keys := make([]string, 0, len(files))
	for name, content := range files {
		key := prefix + "/results/" + name
		keys = append(keys, key)
		m.On("GetObject", mock.Anything, "test-bucket", key, mock.Anything).
			Return(io.NopCloser(strings.NewReader(content)), nil)
	}
	m.On("ListObjects", mock.Anything, "test-bucket", minio.ListObjectsOptions{Prefix: prefix + "/", Recursive: true}).
		Return(objectChannel(keys...))
}

func TestService_ReconcileBucketUsesCache(t *testing.T) {
	mockClient := new(mocks.Client)
	mockBucketSnapshot(mockClient, "builds/mr", mrFiles())
	mockBucketSnapshot(mockClient, "builds/smr", smrFiles())

	svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, Settings{
		Patch:    patch.DefaultConfig(),
		CacheTTL: time.Minute,
	})

	req := ReconcileRequest{MR: "builds/mr", SMR: "builds/smr", Reference: "2026-03-15"}
	report, err := svc.Reconcile(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, report.Verdict.CanProceed, report.Verdict.FailReasons)
	assert.Equal(t, "bucket:test-bucket/builds/mr", report.MR.Label)

	_, err = svc.Reconcile(context.Background(), req)
	require.NoError(t, err)
	mockClient.AssertNumberOfCalls(t, "ListObjects", 2)
}

func TestService_ReconcileBucketWithoutDeviceinfo(t *testing.T) {
	mockClient := new(mocks.Client)
	mockBucketSnapshot(mockClient, "builds/mr", mrFiles())
	mockClient.On("ListObjects", mock.Anything, "test-bucket", minio.ListObjectsOptions{Prefix: "builds/logs/", Recursive: true}).
		Return(objectChannel("builds/logs/host_log.txt"))

	svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, Settings{Patch: patch.DefaultConfig()})
	_, err := svc.Reconcile(context.Background(), ReconcileRequest{MR: "builds/mr", SMR: "builds/logs"})
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	mockClient.AssertNotCalled(t, "GetObject", mock.Anything, "test-bucket", "builds/logs/host_log.txt", mock.Anything)
}

func TestService_CheckPatch(t *testing.T) {
	svc := NewService(nil, "", nil, nil, Settings{Patch: patch.DefaultConfig()})

	result, err := svc.CheckPatch(PatchRequest{MR: "2026-02-05", SMR: "2026-03-05", Reference: "2026-03-15"})
	require.NoError(t, err)
	assert.True(t, result.AllChecksPassed)

	result, err = svc.CheckPatch(PatchRequest{MR: "2026-03-05", SMR: "2026-02-05", Reference: "2026-03-15"})
	require.NoError(t, err)
	assert.Equal(t, patch.OrderingOlder, result.Ordering)

	_, err = svc.CheckPatch(PatchRequest{MR: "2026-02-05", SMR: "2026-03-05", Reference: "yesterday"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_PublishReport(t *testing.T) {
	mockClient := new(mocks.Client)
	mockBucketSnapshot(mockClient, "builds/mr", mrFiles())
	mockBucketSnapshot(mockClient, "builds/smr", smrFiles())
	mockClient.On("PutObject", mock.Anything, "test-bucket", mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "reports/") && strings.HasSuffix(key, ".json")
	}), mock.Anything, mock.AnythingOfType("int64"), minio.PutObjectOptions{ContentType: "application/json"}).
		Return(minio.UploadInfo{}, nil).Once()

	svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, Settings{Patch: patch.DefaultConfig()})
	report, err := svc.Reconcile(context.Background(), ReconcileRequest{
		MR: "builds/mr", SMR: "builds/smr", Reference: "2026-03-15", Publish: true,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(report.PublishedTo, "reports/"))
	mockClient.AssertExpectations(t)
}
