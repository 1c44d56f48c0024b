package pivot

import (
	"github.com/Velocidex/ordereddict"
)

// Row is a mapping from field name to a tagged Value. The backing dict
// preserves the order fields were set in, which keeps diagnostics aligned
// with the input's column order; aggregation itself never depends on it.
// Rows are built once by a source and read-only thereafter.
type Row struct {
	fields *ordereddict.Dict
}

// NewRow creates an empty row.
func NewRow() *Row {
	return &Row{fields: ordereddict.NewDict()}
}

// Set associates a value with a field, replacing any previous value.
// It returns the row to allow chained construction.
func (r *Row) Set(field string, v Value) *Row {
	r.fields.Set(field, v)
	return r
}

// SetText sets a text-valued field.
func (r *Row) SetText(field, s string) *Row {
	return r.Set(field, Text(s))
}

// SetNumber sets a numeric field.
func (r *Row) SetNumber(field string, f float64) *Row {
	return r.Set(field, Number(f))
}

// Get returns the value for a field and whether the field is present.
func (r *Row) Get(field string) (Value, bool) {
	raw, ok := r.fields.Get(field)
	if !ok {
		return Value{}, false
	}
	return raw.(Value), true
}

// Text returns the text content of a field. A missing field yields a
// MissingFieldError and a numeric field a TypeMismatchError.
func (r *Row) Text(field string) (string, error) {
	v, ok := r.Get(field)
	if !ok {
		return "", &MissingFieldError{Field: field}
	}
	s, err := v.Text()
	if err != nil {
		return "", fieldError(field, err)
	}
	return s, nil
}

// Number returns the numeric content of a field, with the same error
// contract as Text.
func (r *Row) Number(field string) (float64, error) {
	v, ok := r.Get(field)
	if !ok {
		return 0, &MissingFieldError{Field: field}
	}
	f, err := v.Number()
	if err != nil {
		return 0, fieldError(field, err)
	}
	return f, nil
}

// Fields returns the field names in the order they were set.
func (r *Row) Fields() []string {
	return r.fields.Keys()
}

// Len returns the number of fields in the row.
func (r *Row) Len() int {
	return r.fields.Len()
}
