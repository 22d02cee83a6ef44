package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffFields(t *testing.T) {
	tests := []struct {
		name    string
		old     Record
		new     Record
		tracked []string
		want    []FieldDifference
	}{
		{
			name:    "NoDifference",
			old:     rec("a", "version_name", "1.0", "min_sdk", 28),
			new:     rec("a", "version_name", "1.0", "min_sdk", 28.0),
			tracked: []string{"version_name", "min_sdk"},
			want:    nil,
		},
		{
			name:    "UntrackedFieldIgnored",
			old:     rec("a", "version_name", "1.0", "first_install_time", 1),
			new:     rec("a", "version_name", "1.0", "first_install_time", 2),
			tracked: []string{"version_name"},
			want:    nil,
		},
		{
			name:    "ChangedValue",
			old:     rec("a", "version_name", "1.0"),
			new:     rec("a", "version_name", "1.1"),
			tracked: []string{"version_name"},
			want:    []FieldDifference{{Field: "version_name", Old: String("1.0"), New: String("1.1")}},
		},
		{
			name:    "MissingFieldIsNull",
			old:     rec("a", "system_priv", true),
			new:     rec("a"),
			tracked: []string{"system_priv"},
			want:    []FieldDifference{{Field: "system_priv", Old: Bool(true), New: Null()}},
		},
		{
			name:    "PlainListOrderMatters",
			old:     rec("a", "dirs", []any{"x", "y"}),
			new:     rec("a", "dirs", []any{"y", "x"}),
			tracked: []string{"dirs"},
			want: []FieldDifference{{
				Field: "dirs",
				Old:   List(String("x"), String("y")),
				New:   List(String("y"), String("x")),
			}},
		},
		{
			name:    "DuplicateTrackedFieldReportedOnce",
			old:     rec("a", "dir", "/system"),
			new:     rec("a", "dir", "/product"),
			tracked: []string{"dir", "dir"},
			want:    []FieldDifference{{Field: "dir", Old: String("/system"), New: String("/product")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiffFields(tt.old, tt.new, tt.tracked))
		})
	}
}

func TestDiffFields_Permissions(t *testing.T) {
	tracked := []string{"requested_permissions"}

	t.Run("ReorderIsNotADifference", func(t *testing.T) {
		old := rec("pkg", "requested_permissions", perms("CAMERA", "INTERNET"))
		new := rec("pkg", "requested_permissions", perms("INTERNET", "CAMERA"))

		assert.Empty(t, DiffFields(old, new, tracked))
	})

	t.Run("AddedPermissionsSummarized", func(t *testing.T) {
		old := rec("pkg", "requested_permissions", perms("CAMERA", "INTERNET"))
		new := rec("pkg", "requested_permissions", perms("CAMERA", "INTERNET", "READ_SMS", "SEND_SMS"))

		diffs := DiffFields(old, new, tracked)
		require.Len(t, diffs, 1)
		assert.True(t, diffs[0].Permissions)
		assert.Equal(t, String("2 permissions: CAMERA, INTERNET"), diffs[0].Old)
		assert.Equal(t, String("4 permissions: CAMERA, INTERNET, READ_SMS..."), diffs[0].New)
	})

	t.Run("FromMissingToList", func(t *testing.T) {
		old := rec("pkg")
		new := rec("pkg", "requested_permissions", perms("CAMERA"))

		diffs := DiffFields(old, new, tracked)
		require.Len(t, diffs, 1)
		assert.True(t, diffs[0].Permissions)
		assert.Equal(t, String("0 permissions"), diffs[0].Old)
		assert.Equal(t, String("1 permissions: CAMERA"), diffs[0].New)
	})

	t.Run("AttributeChangeOnlyIsIgnored", func(t *testing.T) {
		old := rec("pkg", "requested_permissions", perms("CAMERA"))
		granted := List(Map(NewFields().Set("name", String("CAMERA")).Set("granted", Bool(false))))
		new := rec("pkg", "requested_permissions", granted)

		assert.Empty(t, DiffFields(old, new, tracked))
	})
}

func TestSummarizePermissions(t *testing.T) {
	tests := []struct {
		names []string
		want  string
	}{
		{nil, "0 permissions"},
		{[]string{"A"}, "1 permissions: A"},
		{[]string{"A", "B", "C"}, "3 permissions: A, B, C"},
		{[]string{"A", "B", "C", "D"}, "4 permissions: A, B, C..."},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, SummarizePermissions(tt.names))
		})
	}
}

func TestIsPermissionList(t *testing.T) {
	assert.True(t, IsPermissionList(perms("A")))
	assert.False(t, IsPermissionList(List()))
	assert.False(t, IsPermissionList(List(String("A"))))
	assert.False(t, IsPermissionList(List(Map(NewFields().Set("id", Int(1))))))
	assert.False(t, IsPermissionList(String("A")))
}
