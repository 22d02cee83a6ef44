package smr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"smr-checker/core/check"
	"smr-checker/core/patch"
	"smr-checker/core/reconcile"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Deviceinfo files read from every snapshot.
const (
	FeatureFile  = "FeatureDeviceInfo.deviceinfo.json"
	PackageFile  = "PackageDeviceInfo.deviceinfo.json"
	GenericFile  = "GenericDeviceInfo.deviceinfo.json"
	PropertyFile = "PropertyDeviceInfo.deviceinfo.json"
	MainlineFile = "MainlineDeviceInfo.deviceinfo.json"
)

// deviceinfoFiles is every file LoadSnapshot reads.
var deviceinfoFiles = []string{FeatureFile, PackageFile, GenericFile, PropertyFile, MainlineFile}

const reasonFileNotFound = "file not found"

const (
	gmsVersionPath = `ro_property.#(name=="ro.com.google.gmsversion").value`

	mainlineGoModule       = "com.google.mainline.go.primary"
	mainlineMetadataModule = "com.google.android.modulemetadata"

	MainlineTypeGo    = "GO"
	MainlineTypeNonGo = "non-GO"
)

// Snapshot is everything extracted from one build's deviceinfo files.
type Snapshot struct {
	// Label identifies where the snapshot was loaded from.
	Label string `json:"label"`

	// Features is the ordered feature list.
	Features []reconcile.Record `json:"-"`

	// Packages is the installed package list.
	Packages []reconcile.Record `json:"-"`

	// SecurityPatch is the YYYY-MM-DD security patch level.
	SecurityPatch string `json:"security_patch"`

	// Fingerprint is the build fingerprint.
	Fingerprint string `json:"fingerprint"`

	// BaseOS is the base OS build fingerprint.
	BaseOS string `json:"base_os"`

	// GMSVersion is the ro.com.google.gmsversion property.
	GMSVersion string `json:"gms_version"`

	// Mainline describes the mainline module train.
	Mainline patch.Descriptor `json:"mainline"`

	// FeatureCount is len(Features).
	FeatureCount int `json:"feature_count"`

	// PackageCount is len(Packages).
	PackageCount int `json:"package_count"`

	// Unavailable maps a deviceinfo file name to the reason it could not be used.
	Unavailable map[string]string `json:"unavailable,omitempty"`
}

// Available reports whether a file was read and decoded, and why not otherwise.
func (s *Snapshot) Available(file string) (bool, string) {
	reason, missing := s.Unavailable[file]
	return !missing, reason
}

// nothingFound reports whether every deviceinfo file was missing.
func (s *Snapshot) nothingFound() bool {
	for _, file := range deviceinfoFiles {
		if s.Unavailable[file] != reasonFileNotFound {
			return false
		}
	}
	return true
}

func (s *Snapshot) markUnavailable(file, reason string) {
	if s.Unavailable == nil {
		s.Unavailable = make(map[string]string)
	}
	s.Unavailable[file] = reason
}

// LoadSnapshot reads and decodes every deviceinfo file of a source. Missing
// or malformed files are recorded in Snapshot.Unavailable and their values
// fall back to the not-found sentinel. Storage failures are returned as
// errors, and so is a source holding none of the deviceinfo files
// (ErrSnapshotNotFound).
func LoadSnapshot(ctx context.Context, src Source, logger *zap.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := logger.With(zap.String("snapshot", src.Label()))

	snap := &Snapshot{
		Label:         src.Label(),
		SecurityPatch: check.NotFound,
		Fingerprint:   check.NotFound,
		BaseOS:        check.NotFound,
		GMSVersion:    check.NotFound,
		Mainline:      patch.MissingDescriptor(),
	}

	read := func(file string) ([]byte, bool, error) {
		data, err := src.ReadFile(ctx, file)
		switch {
		case err == nil:
			return data, true, nil
		case errors.Is(err, ErrFileNotFound):
			l.Warn("Deviceinfo file missing", zap.String("file", file))
			snap.markUnavailable(file, reasonFileNotFound)
			return nil, false, nil
		default:
			return nil, false, err
		}
	}

	// 1. Record lists
	for _, spec := range []*reconcile.Spec{&FeatureSpec, &PackageSpec} {
		file := specFile(spec)
		data, ok, err := read(file)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		records, err := reconcile.DecodeRecords(data, spec.ListKey)
		if err != nil {
			l.Warn("Failed to decode record list", zap.String("file", file), zap.Error(err))
			snap.markUnavailable(file, err.Error())
			continue
		}
		if spec.Category == FeatureSpec.Category {
			snap.Features = records
		} else {
			snap.Packages = records
		}
	}
	snap.FeatureCount = len(snap.Features)
	snap.PackageCount = len(snap.Packages)

	// 2. Build identity
	data, ok, err := read(GenericFile)
	if err != nil {
		return nil, err
	}
	if ok {
		if !gjson.ValidBytes(data) {
			snap.markUnavailable(GenericFile, "invalid json")
		} else {
			snap.Fingerprint = stringOrNotFound(gjson.GetBytes(data, "build_fingerprint"))
			snap.BaseOS = stringOrNotFound(gjson.GetBytes(data, "build_version_base_os"))
			snap.SecurityPatch = stringOrNotFound(gjson.GetBytes(data, "build_version_security_patch"))
		}
	}

	// 3. GMS version
	data, ok, err = read(PropertyFile)
	if err != nil {
		return nil, err
	}
	if ok {
		if !gjson.ValidBytes(data) {
			snap.markUnavailable(PropertyFile, "invalid json")
		} else {
			snap.GMSVersion = ExtractGMSVersion(data)
		}
	}

	// 4. Mainline train
	data, ok, err = read(MainlineFile)
	if err != nil {
		return nil, err
	}
	if ok {
		if !gjson.ValidBytes(data) {
			snap.markUnavailable(MainlineFile, "invalid json")
		} else {
			snap.Mainline = ExtractMainline(data)
		}
	}

	if snap.nothingFound() {
		return nil, fmt.Errorf("%w: no deviceinfo files in %s", ErrSnapshotNotFound, src.Label())
	}

	l.Debug("Snapshot loaded",
		zap.Int("features", snap.FeatureCount),
		zap.Int("packages", snap.PackageCount),
		zap.Int("unavailable", len(snap.Unavailable)),
	)

	return snap, nil
}

// ExtractGMSVersion reads ro.com.google.gmsversion from a PropertyDeviceInfo document.
func ExtractGMSVersion(data []byte) string {
	return stringOrNotFound(gjson.GetBytes(data, gmsVersionPath))
}

// ExtractMainline finds the mainline train module of a MainlineDeviceInfo
// document. The GO train module wins over the module metadata package.
func ExtractMainline(data []byte) patch.Descriptor {
	modules := gjson.GetBytes(data, "mainline_modules").Array()

	for _, candidate := range []struct {
		needle string
		kind   string
	}{
		{mainlineGoModule, MainlineTypeGo},
		{mainlineMetadataModule, MainlineTypeNonGo},
	} {
		for _, m := range modules {
			name := m.Get("mainline_module_name").String()
			if !strings.Contains(name, candidate.needle) {
				continue
			}
			return patch.Descriptor{
				Type:    candidate.kind,
				Name:    name,
				Version: stringOrNotFound(m.Get("mainline_module_version_name")),
			}
		}
	}

	return patch.MissingDescriptor()
}

func stringOrNotFound(r gjson.Result) string {
	if !r.Exists() || r.Type == gjson.Null {
		return check.NotFound
	}
	s := strings.TrimSpace(r.String())
	if s == "" {
		return check.NotFound
	}
	return s
}

func specFile(spec *reconcile.Spec) string {
	if spec.Category == PackageSpec.Category {
		return PackageFile
	}
	return FeatureFile
}

// Describe renders a one-line summary for logs.
func (s *Snapshot) Describe() string {
	return fmt.Sprintf("%s: %d features, %d packages, patch %s", s.Label, s.FeatureCount, s.PackageCount, s.SecurityPatch)
}
