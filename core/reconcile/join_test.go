package reconcile

import (
	"testing"

	"smr-checker/core/check"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var packageFields = []string{"version_name", "dir", "system_priv", "requested_permissions"}

func TestKeyedCompare(t *testing.T) {
	t.Run("SortedUnion", func(t *testing.T) {
		old := []Record{rec("com.b", "version_name", "1"), rec("com.a", "version_name", "1")}
		new := []Record{rec("com.c", "version_name", "1"), rec("com.a", "version_name", "1")}

		result := KeyedCompare(old, new, packageFields)

		assert.Equal(t, []string{"com.a", "com.b", "com.c"}, changeNames(result))
		assert.Equal(t, []ChangeType{ChangeSame, ChangeRemoved, ChangeAdded}, changeTypes(result))
		assert.Equal(t, Summary{Same: 1, Added: 1, Removed: 1}, result.Summary)
		assert.False(t, result.IsIdentical)
		assert.Equal(t, check.Fail, result.Status)
	})

	t.Run("ReorderIsNeverMoved", func(t *testing.T) {
		old := []Record{rec("com.a"), rec("com.b")}
		new := []Record{rec("com.b"), rec("com.a")}

		result := KeyedCompare(old, new, packageFields)

		assert.Equal(t, Summary{Same: 2}, result.Summary)
		assert.True(t, result.IsIdentical)
		assert.Equal(t, check.Pass, result.Status)
	})

	t.Run("UntrackedChangeIsSame", func(t *testing.T) {
		old := []Record{rec("com.a", "version_name", "1", "first_install_time", 10)}
		new := []Record{rec("com.a", "version_name", "1", "first_install_time", 20)}

		result := KeyedCompare(old, new, packageFields)
		assert.Equal(t, []ChangeType{ChangeSame}, changeTypes(result))
	})

	t.Run("ModifiedWithPermissions", func(t *testing.T) {
		old := []Record{rec("com.a", "system_priv", true, "requested_permissions", perms("CAMERA"))}
		new := []Record{rec("com.a", "system_priv", true, "requested_permissions", perms("CAMERA", "READ_SMS"))}

		result := KeyedCompare(old, new, packageFields)

		require.Len(t, result.Changes, 1)
		change := result.Changes[0]
		assert.Equal(t, ChangeModified, change.Type)
		assert.True(t, change.HasPermissionDifference())
		assert.Equal(t, "requested_permissions", change.Differences[0].Field)
	})

	t.Run("LastWriteWins", func(t *testing.T) {
		old := []Record{rec("com.a", "version_name", "1"), rec("com.a", "version_name", "2")}
		new := []Record{rec("com.a", "version_name", "2")}

		result := KeyedCompare(old, new, packageFields)

		require.Len(t, result.Changes, 1)
		assert.Equal(t, ChangeSame, result.Changes[0].Type)
		assert.Equal(t, 1, *result.Changes[0].OldIndex)
		assert.Equal(t, 0, *result.Changes[0].NewIndex)
	})

	t.Run("Identity", func(t *testing.T) {
		list := []Record{rec("com.a", "version_name", "1"), rec("com.b", "dir", "/system/app")}

		result := KeyedCompare(list, list, packageFields)

		assert.True(t, result.IsIdentical)
		assert.Zero(t, result.Summary.Added+result.Summary.Removed+result.Summary.Modified)
	})
}

func TestSpec_Compare(t *testing.T) {
	old := []Record{rec("A"), rec("B")}
	new := []Record{rec("B"), rec("A")}

	ordered := &Spec{Category: "feature", Mode: ModeOrdered}
	keyed := &Spec{Category: "package", Mode: ModeKeyed, TrackedFields: packageFields}

	assert.Equal(t, 2, ordered.Compare(old, new).Summary.Moved)
	assert.Equal(t, 2, keyed.Compare(old, new).Summary.Same)
}
