package patch

import (
	"testing"

	"smr-checker/core/check"

	"github.com/stretchr/testify/assert"
)

func TestCompareScalar(t *testing.T) {
	tests := []struct {
		name   string
		mr     string
		smr    string
		result check.Result
		reason string
	}{
		{"Equal", "15_202601", "15_202601", check.Pass, ""},
		{"EqualAfterTrim", " 15_202601\n", "15_202601", check.Pass, ""},
		{"Different", "15_202601", "15_202602", check.Fail, "values differ at position 9"},
		{"DifferentLength", "abc", "abcd", check.Fail, "values differ at position 4 (length MR 3, SMR 4)"},
		{"MissingMR", "not found", "15_202601", check.Fail, "value not found in MR"},
		{"MissingSMR", "15_202601", "", check.Fail, "value not found in SMR"},
		{"BothMissingNeverPass", "not found", "not found", check.Fail, "value not found in MR and SMR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := CompareScalar(tt.mr, tt.smr)
			assert.Equal(t, tt.result, out.Result)
			assert.Equal(t, tt.reason, out.Reason)
		})
	}
}

func TestCompareDescriptor(t *testing.T) {
	goModule := Descriptor{Type: "GO", Name: "com.google.mainline.go.primary", Version: "2026-01"}

	tests := []struct {
		name   string
		mr     Descriptor
		smr    Descriptor
		result check.Result
		reason string
	}{
		{"Equal", goModule, goModule, check.Pass, ""},
		{
			"TypeMismatch",
			goModule,
			Descriptor{Type: "non-GO", Name: "com.google.android.modulemetadata", Version: "2026-01"},
			check.Fail,
			"type mismatch: MR GO, SMR non-GO; module mismatch: MR com.google.mainline.go.primary, SMR com.google.android.modulemetadata",
		},
		{
			"VersionMismatch",
			goModule,
			Descriptor{Type: "GO", Name: "com.google.mainline.go.primary", Version: "2026-02"},
			check.Fail,
			"version mismatch: MR 2026-01, SMR 2026-02",
		},
		{"MissingSMR", goModule, MissingDescriptor(), check.Fail, "mainline version not found in SMR"},
		{"BothMissing", MissingDescriptor(), MissingDescriptor(), check.Fail, "mainline version not found in MR and SMR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := CompareDescriptor(tt.mr, tt.smr)
			assert.Equal(t, tt.result, out.Result)
			assert.Equal(t, tt.reason, out.Reason)
		})
	}
}
