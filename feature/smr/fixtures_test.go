package smr

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	mrFingerprint = "google/oriole/oriole:14/AP1A.240305.019/11445699:user/release-keys"
	testGMS       = "14_202402"
)

var testReference = time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

// snapshotFiles returns a complete, consistent set of deviceinfo documents.
func snapshotFiles(securityPatch, baseOS string) map[string]string {
	return map[string]string{
		FeatureFile: `{"feature": [
			{"name": "android.hardware.camera", "type": "sdk", "available": true},
			{"name": "android.hardware.wifi", "type": "sdk", "available": true},
			{"name": "com.google.android.feature.PIXEL_EXPERIENCE", "type": "other", "available": true}
		]}`,
		PackageFile: `{"package": [
			{"name": "com.android.settings", "version_name": "14", "dir": "/system/priv-app", "system_priv": true,
			 "min_sdk": 34, "target_sdk": 34,
			 "requested_permissions": [{"name": "android.permission.WRITE_SETTINGS"}]},
			{"name": "com.android.chrome", "version_name": "121.0", "dir": "/product/app", "system_priv": false,
			 "min_sdk": 29, "target_sdk": 34,
			 "requested_permissions": [{"name": "android.permission.INTERNET"}]}
		]}`,
		GenericFile: `{"build_fingerprint": "` + mrFingerprint + `",
			"build_version_base_os": "` + baseOS + `",
			"build_version_security_patch": "` + securityPatch + `"}`,
		PropertyFile: `{"ro_property": [
			{"name": "ro.build.type", "value": "user"},
			{"name": "ro.com.google.gmsversion", "value": "` + testGMS + `"}
		]}`,
		MainlineFile: `{"mainline_modules": [
			{"mainline_module_name": "com.google.android.modulemetadata", "mainline_module_version_name": "340090000"},
			{"mainline_module_name": "com.google.mainline.go.primary", "mainline_module_version_name": "2024-02"}
		]}`,
	}
}

func mrFiles() map[string]string {
	return snapshotFiles("2026-02-05", "")
}

func smrFiles() map[string]string {
	return snapshotFiles("2026-03-05", mrFingerprint)
}

// writeSnapshot lays out files below a nested result folder, the way CTS does.
func writeSnapshot(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "android-cts", "results", "device-info-files")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return root
}

func loadDir(t *testing.T, files map[string]string) *Snapshot {
	t.Helper()
	snap, err := LoadSnapshot(context.Background(), NewDirSource(writeSnapshot(t, files)), nil)
	require.NoError(t, err)
	return snap
}
