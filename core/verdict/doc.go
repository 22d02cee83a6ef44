// Package verdict folds individual check outcomes into one can-proceed
// decision with a deduplicated list of reasons.
//
// Checks keep the order in which they were added. Any FAIL blocks the
// verdict. Package comparisons go through PackageRule, which only fails on
// added or removed packages and on permission changes of privileged packages.
package verdict
