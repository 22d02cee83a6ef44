package smr

import (
	"fmt"
	"time"

	"smr-checker/core/check"
	"smr-checker/core/patch"
	"smr-checker/core/reconcile"
	"smr-checker/core/verdict"

	"go.uber.org/zap"
)

// Check names, in evaluation order.
const (
	CheckSecurityPatch = "Security patch"
	CheckFingerprint   = "Base_OS Fingerprint"
	CheckGMSVersion    = "GMS version"
	CheckMainline      = "Mainline version"
	CheckFeatures      = "Feature DeviceInfo"
	CheckPackages      = "Package DeviceInfo"
)

// PackageFields are the package fields compared between builds.
var PackageFields = []string{
	"version_name",
	"dir",
	"system_priv",
	"min_sdk",
	"target_sdk",
	"shares_install_packages_permission",
	"has_default_notification_access",
	"is_active_admin",
	"is_default_accessibility_service",
	"requested_permissions",
}

// FeatureSpec compares feature lists, where order is meaningful.
var FeatureSpec = reconcile.Spec{
	Category: "feature",
	ListKey:  "feature",
	Mode:     reconcile.ModeOrdered,
}

// PackageSpec compares package lists by package name.
var PackageSpec = reconcile.Spec{
	Category:      "package",
	ListKey:       "package",
	Mode:          reconcile.ModeKeyed,
	TrackedFields: PackageFields,
}

// Report is the full outcome of one MR/SMR reconciliation.
type Report struct {
	// Reference is the calendar day patch dates were validated against.
	Reference time.Time `json:"reference"`

	// MR is the baseline snapshot.
	MR *Snapshot `json:"mr"`

	// SMR is the candidate snapshot.
	SMR *Snapshot `json:"smr"`

	// SecurityPatch is the patch date comparison.
	SecurityPatch patch.Comparison `json:"security_patch"`

	// Fingerprint compares the MR fingerprint against the SMR base OS.
	Fingerprint check.Outcome `json:"fingerprint"`

	// GMSVersion compares the GMS version properties.
	GMSVersion check.Outcome `json:"gms_version"`

	// Mainline compares the mainline train descriptors.
	Mainline check.Outcome `json:"mainline"`

	// Features is the feature comparison, nil when a feature file was unavailable.
	Features *reconcile.ComparisonResult `json:"features,omitempty"`

	// FeaturesStrict is the exact feature comparison, nil when unavailable.
	FeaturesStrict *reconcile.StrictResult `json:"features_strict,omitempty"`

	// Packages is the package comparison, nil when a package file was unavailable.
	Packages *reconcile.ComparisonResult `json:"packages,omitempty"`

	// Verdict is the final decision.
	Verdict verdict.Verdict `json:"verdict"`

	// RunID is set once the report has been stored in the run history.
	RunID string `json:"run_id,omitempty"`

	// PublishedTo is the object key of the uploaded JSON report.
	PublishedTo string `json:"published_to,omitempty"`
}

// Pipeline runs every check over a pair of snapshots.
// It holds configuration only and is safe for concurrent use.
type Pipeline struct {
	validator *patch.Validator
	rule      verdict.PackageRule
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the source of the reference date.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithPackageRule overrides the package rule.
func WithPackageRule(rule verdict.PackageRule) Option {
	return func(p *Pipeline) {
		p.rule = rule
	}
}

// NewPipeline creates a pipeline with the given patch window.
func NewPipeline(cfg patch.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		validator: patch.NewValidator(cfg),
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run reconciles two snapshots against the pipeline clock.
func (p *Pipeline) Run(mr, smr *Snapshot) *Report {
	return p.RunAt(mr, smr, p.now())
}

// ComparePatch compares two security patch levels. A zero ref uses the
// pipeline clock.
func (p *Pipeline) ComparePatch(mr, smr string, ref time.Time) patch.Comparison {
	if ref.IsZero() {
		ref = p.now()
	}
	return p.validator.CompareDates(mr, smr, ref)
}

// RunAt reconciles two snapshots against an explicit reference time.
// A zero ref uses the pipeline clock.
func (p *Pipeline) RunAt(mr, smr *Snapshot, ref time.Time) *Report {
	agg := verdict.New()
	report := &Report{MR: mr, SMR: smr}

	// 1. Security patch
	report.SecurityPatch = p.ComparePatch(mr.SecurityPatch, smr.SecurityPatch, ref)
	report.Reference = report.SecurityPatch.Reference
	agg.AddPatch(CheckSecurityPatch, report.SecurityPatch)

	// 2. MR fingerprint must equal the SMR base OS
	report.Fingerprint = patch.CompareScalar(mr.Fingerprint, smr.BaseOS)
	agg.AddOutcome(CheckFingerprint, report.Fingerprint)

	// 3. GMS version
	report.GMSVersion = patch.CompareScalar(mr.GMSVersion, smr.GMSVersion)
	agg.AddOutcome(CheckGMSVersion, report.GMSVersion)

	// 4. Mainline train
	report.Mainline = patch.CompareDescriptor(mr.Mainline, smr.Mainline)
	agg.AddOutcome(CheckMainline, report.Mainline)

	// 5. Features
	if reasons := unavailable(FeatureFile, mr, smr); len(reasons) > 0 {
		agg.Add(CheckFeatures, check.Fail, reasons...)
	} else {
		report.Features = FeatureSpec.Compare(mr.Features, smr.Features)
		strict, err := reconcile.StrictCompare(mr.Features, smr.Features)
		if err != nil {
			p.logger.Warn("Strict feature comparison failed", zap.Error(err))
		}
		report.FeaturesStrict = strict
		agg.AddComparison(CheckFeatures, report.Features)
	}

	// 6. Packages
	if reasons := unavailable(PackageFile, mr, smr); len(reasons) > 0 {
		agg.Add(CheckPackages, check.Fail, reasons...)
	} else {
		report.Packages = PackageSpec.Compare(mr.Packages, smr.Packages)
		agg.AddPackages(CheckPackages, report.Packages, p.rule)
	}

	report.Verdict = agg.Verdict()

	p.logger.Info("Reconciliation finished",
		zap.String("mr", mr.Label),
		zap.String("smr", smr.Label),
		zap.Bool("can_proceed", report.Verdict.CanProceed),
		zap.Int("fail_reasons", len(report.Verdict.FailReasons)),
	)

	return report
}

func unavailable(file string, mr, smr *Snapshot) []string {
	var reasons []string
	if ok, why := mr.Available(file); !ok {
		reasons = append(reasons, fmt.Sprintf("%s unavailable in MR: %s", file, why))
	}
	if ok, why := smr.Available(file); !ok {
		reasons = append(reasons, fmt.Sprintf("%s unavailable in SMR: %s", file, why))
	}
	return reasons
}
