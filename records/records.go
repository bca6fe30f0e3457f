package records

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for record normalization and field access.
var (
	// ErrUnsupportedInput indicates Normalize received neither a record nor
	// a slice of records.
	ErrUnsupportedInput = errors.New("records: unsupported input shape")

	// ErrFieldMissing indicates a required field is absent from a record.
	ErrFieldMissing = errors.New("records: field missing")

	// ErrFieldType indicates a field value cannot convert to the requested type.
	ErrFieldType = errors.New("records: field has wrong type")
)

// Record is one flat attribute record: field name → scalar value.
type Record map[string]any

// Normalize coerces a single record or a slice of records into []Record.
// Accepted shapes: Record, map[string]any, []Record, []map[string]any.
func Normalize(v any) ([]Record, error) {
	switch in := v.(type) {
	case Record:
		return []Record{in}, nil
	case map[string]any:
		return []Record{Record(in)}, nil
	case []Record:
		return in, nil
	case []map[string]any:
		out := make([]Record, len(in))
		for i, m := range in {
			out[i] = Record(m)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("records: %T: %w", v, ErrUnsupportedInput)
	}
}

// Has reports whether the field is present.
func (r Record) Has(field string) bool {
	_, ok := r[field]

	return ok
}

// Int returns an integer field. Integer-valued floats convert cleanly;
// anything else fails with ErrFieldType.
func (r Record) Int(field string) (int, error) {
	v, ok := r[field]
	if !ok {
		return 0, fmt.Errorf("records: %q: %w", field, ErrFieldMissing)
	}

	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("records: %q is not integral: %w", field, ErrFieldType)
		}

		return int(n), nil
	default:
		return 0, fmt.Errorf("records: %q is %T: %w", field, v, ErrFieldType)
	}
}

// Float returns a floating-point field; integer values widen.
func (r Record) Float(field string) (float64, error) {
	v, ok := r[field]
	if !ok {
		return 0, fmt.Errorf("records: %q: %w", field, ErrFieldMissing)
	}

	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("records: %q is %T: %w", field, v, ErrFieldType)
	}
}

// Fields returns the record's field names in sorted order.
func (r Record) Fields() []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// Without returns a copy of the record with the named fields removed.
// Consumers use it to collect the pass-through remainder after extracting
// the fields they understand.
func (r Record) Without(fields ...string) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	for _, f := range fields {
		delete(out, f)
	}

	return out
}
