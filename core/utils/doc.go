// Package utils provides loose type conversions for values decoded from
// deviceinfo JSON, where flags may arrive as booleans, numbers or strings.
package utils
