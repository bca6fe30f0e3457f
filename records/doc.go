// Package records normalizes flat attribute records — single maps, slices
// of maps, or anything already shaped like them — into a uniform []Record,
// and gives typed access to their scalar fields.
//
// The detector builders consume records in two places: per-cell drift-time
// assignment (fields sl, l, w, time) and trigger-primitive segment
// construction (fields wh, sc, st plus psi/x or k/z). Fields a consumer
// does not recognize are passed through untouched, so arbitrary analysis
// columns survive the trip onto the resulting entity.
//
// Errors:
//
//	ErrUnsupportedInput - Normalize received something that is not a record
//	                      or a slice of records.
//	ErrFieldMissing     - a required field is absent.
//	ErrFieldType        - a field exists but cannot convert to the requested type.
package records
