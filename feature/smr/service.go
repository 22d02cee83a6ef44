package smr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"smr-checker/core/patch"
	"smr-checker/core/storage"
	"smr-checker/feature/smr/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrInvalidRequest marks caller mistakes such as a malformed reference date.
var ErrInvalidRequest = errors.New("invalid request")

// Snapshot source kinds.
const (
	SourceBucket = "bucket"
	SourceDir    = "dir"
)

const reportPrefix = "reports/"

// Settings tune a Service.
type Settings struct {
	// Patch is the accepted security patch window.
	Patch patch.Config
	// CacheTTL is how long loaded snapshots are reused. Zero disables caching.
	CacheTTL time.Duration
	// AllowDir permits local directory sources. Only the CLI enables it.
	AllowDir bool
}

// ReconcileRequest names the two snapshots to compare.
type ReconcileRequest struct {
	// MR is the baseline snapshot location (bucket prefix or directory).
	MR string `json:"mr"`
	// SMR is the candidate snapshot location.
	SMR string `json:"smr"`
	// Source is "bucket" (default) or "dir".
	Source string `json:"source,omitempty"`
	// Reference is an optional YYYY-MM-DD reference date. Empty means today.
	Reference string `json:"reference,omitempty"`
	// Save stores the run in the history when a database is configured.
	Save bool `json:"save,omitempty"`
	// Publish uploads the JSON report to the bucket under reports/.
	Publish bool `json:"publish,omitempty"`
}

// PatchRequest compares two security patch levels without loading snapshots.
type PatchRequest struct {
	MR        string `json:"mr"`
	SMR       string `json:"smr"`
	Reference string `json:"reference,omitempty"`
}

// Service orchestrates snapshot loading, reconciliation and run history.
type Service struct {
	client   storage.Client
	bucket   string
	logger   *zap.Logger
	pipeline *Pipeline
	cache    *SnapshotCache
	history  *History
	allowDir bool
}

// NewService creates a new reconciliation service. db may be nil, in which
// case history is disabled.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, settings Settings) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:   client,
		bucket:   bucket,
		logger:   logger,
		pipeline: NewPipeline(settings.Patch, WithLogger(logger)),
		cache:    NewSnapshotCache(settings.CacheTTL, logger),
		history:  NewHistory(db),
		allowDir: settings.AllowDir,
	}
}

// Pipeline exposes the underlying pipeline.
func (s *Service) Pipeline() *Pipeline {
	return s.pipeline
}

// History exposes the run history store.
func (s *Service) History() *History {
	return s.history
}

// SourceFor resolves a location into a snapshot source.
func (s *Service) SourceFor(kind, location string) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: snapshot location is required", ErrInvalidRequest)
	}

	switch strings.ToLower(kind) {
	case "", SourceBucket:
		if s.client == nil {
			return nil, fmt.Errorf("%w: storage is not configured", ErrInvalidRequest)
		}
		return NewBucketSource(s.client, s.bucket, location), nil
	case SourceDir:
		if !s.allowDir {
			return nil, fmt.Errorf("%w: directory sources are not allowed", ErrInvalidRequest)
		}
		return NewDirSource(location), nil
	default:
		return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidRequest, kind)
	}
}

// LoadPair loads both snapshots concurrently.
func (s *Service) LoadPair(ctx context.Context, mr, smr Source) (*Snapshot, *Snapshot, error) {
	var mrSnap, smrSnap *Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap, err := s.cache.Get(gctx, mr)
		if err != nil {
			return fmt.Errorf("failed to load MR snapshot: %w", err)
		}
		mrSnap = snap
		return nil
	})
	g.Go(func() error {
		snap, err := s.cache.Get(gctx, smr)
		if err != nil {
			return fmt.Errorf("failed to load SMR snapshot: %w", err)
		}
		smrSnap = snap
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return mrSnap, smrSnap, nil
}

// Reconcile loads both snapshots, runs every check and optionally stores the run.
func (s *Service) Reconcile(ctx context.Context, req ReconcileRequest) (*Report, error) {
	// 1. Validate input
	ref, err := parseReference(req.Reference)
	if err != nil {
		return nil, err
	}
	mrSrc, err := s.SourceFor(req.Source, req.MR)
	if err != nil {
		return nil, err
	}
	smrSrc, err := s.SourceFor(req.Source, req.SMR)
	if err != nil {
		return nil, err
	}

	// 2. Load snapshots
	mr, smr, err := s.LoadPair(ctx, mrSrc, smrSrc)
	if err != nil {
		return nil, err
	}

	// 3. Run checks
	report := s.pipeline.RunAt(mr, smr, ref)

	// 4. Persist, best effort
	if req.Save && s.history.Enabled() {
		run, err := s.history.Save(ctx, report)
		if err != nil {
			s.logger.Warn("Failed to store run", zap.Error(err))
		} else {
			report.RunID = run.ID
		}
	}

	if req.Publish {
		key, err := s.PublishReport(ctx, report)
		if err != nil {
			return nil, err
		}
		report.PublishedTo = key
	}

	return report, nil
}

// PublishReport uploads the report as JSON and returns the object key.
// Stored runs reuse their run id as the object name.
func (s *Service) PublishReport(ctx context.Context, report *Report) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("%w: storage is not configured", ErrInvalidRequest)
	}

	id := report.RunID
	if id == "" {
		id = uuid.NewString()
	}
	key := reportPrefix + id + ".json"

	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to publish report: %w", err)
	}

	s.logger.Info("Report published", zap.String("bucket", s.bucket), zap.String("key", key))
	return key, nil
}

// CheckPatch validates and orders two security patch levels.
func (s *Service) CheckPatch(req PatchRequest) (patch.Comparison, error) {
	ref, err := parseReference(req.Reference)
	if err != nil {
		return patch.Comparison{}, err
	}
	return s.pipeline.ComparePatch(req.MR, req.SMR, ref), nil
}

// ListRuns returns stored runs, newest first.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]models.Run, error) {
	return s.history.List(ctx, limit)
}

func parseReference(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	ref, err := time.Parse(patch.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: reference must be YYYY-MM-DD: %s", ErrInvalidRequest, value)
	}
	return ref, nil
}
