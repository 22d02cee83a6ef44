package verdict

import (
	"fmt"
	"strings"

	"smr-checker/core/check"
	"smr-checker/core/reconcile"
)

// DefaultPrivilegedField is the package field marking a system-privileged app.
const DefaultPrivilegedField = "system_priv"

// DefaultPermissionField is the package field holding the requested permissions.
const DefaultPermissionField = "requested_permissions"

const namePreview = 3

// PackageRule decides the package check. Package lists always differ a
// little between builds, so the raw comparison status is not used. The check
// fails when a package was added or removed, or when a privileged package
// changed its permission list.
type PackageRule struct {
	// PrivilegedField is the field whose truthy value marks a privileged package
	// in the old snapshot. Empty means DefaultPrivilegedField.
	PrivilegedField string

	// PermissionField is the field holding the permission list. Any difference
	// on it counts as a permission change, whatever shape its entries have.
	// Empty means DefaultPermissionField.
	PermissionField string
}

// Evaluate applies the rule to a package comparison.
func (p PackageRule) Evaluate(r *reconcile.ComparisonResult) (check.Result, []string) {
	field := p.PrivilegedField
	if field == "" {
		field = DefaultPrivilegedField
	}
	permField := p.PermissionField
	if permField == "" {
		permField = DefaultPermissionField
	}

	var reasons []string

	if added := r.ChangesOf(reconcile.ChangeAdded); len(added) > 0 {
		reasons = append(reasons, fmt.Sprintf("%d packages added: %s", len(added), previewNames(added)))
	}
	if removed := r.ChangesOf(reconcile.ChangeRemoved); len(removed) > 0 {
		reasons = append(reasons, fmt.Sprintf("%d packages removed: %s", len(removed), previewNames(removed)))
	}

	for _, c := range r.ChangesOf(reconcile.ChangeModified) {
		if c.OldRecord == nil || !c.OldRecord.Value(field).Truthy() {
			continue
		}
		for _, d := range c.Differences {
			if !d.Permissions && d.Field != permField {
				continue
			}
			reasons = append(reasons, fmt.Sprintf("privileged package %s changed permissions: %s -> %s",
				c.Name, permissionSummary(d, d.Old), permissionSummary(d, d.New)))
		}
	}

	if len(reasons) > 0 {
		return check.Fail, reasons
	}
	return check.Pass, nil
}

// permissionSummary renders one side of a permission difference. Flagged
// differences are already summarized; raw lists are summarized from their
// named entries.
func permissionSummary(d reconcile.FieldDifference, v reconcile.Value) string {
	if d.Permissions || v.Kind() != reconcile.KindList {
		return v.String()
	}
	return reconcile.SummarizePermissions(reconcile.PermissionNames(v))
}

func previewNames(changes []reconcile.Change) string {
	names := make([]string, 0, namePreview)
	for i, c := range changes {
		if i == namePreview {
			break
		}
		names = append(names, c.Name)
	}
	s := strings.Join(names, ", ")
	if len(changes) > namePreview {
		s += "..."
	}
	return s
}
