// Package check holds the PASS/FAIL vocabulary shared by the validators,
// comparators and the verdict aggregator.
package check
