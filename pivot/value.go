// Package pivot computes grouped aggregate statistics (pivot tables) over
// tabular rows: for each unique combination of grouping-field values it
// accumulates a running sum and count per measured field and derives a mean.
// Rows may arrive from a streaming source (Scan) or from a fully
// materialized slice (Pivot); both paths produce identical results.
package pivot

import "strconv"

// Kind discriminates the two value kinds a field can hold.
type Kind int

const (
	KindText Kind = iota
	KindNumber
)

// String returns the kind name for error messages.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	}
	return "unknown"
}

// Value is a tagged variant over text and numeric field values. The zero
// value is the empty text value. Accessors return a TypeMismatchError on a
// wrong-kind access instead of panicking or silently converting.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// Text creates a text value.
func Text(s string) Value {
	return Value{kind: KindText, str: s}
}

// Number creates a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Kind returns the value's kind tag.
func (v Value) Kind() Kind {
	return v.kind
}

// Text returns the text content, or a TypeMismatchError if the value is
// numeric.
func (v Value) Text() (string, error) {
	if v.kind != KindText {
		return "", &TypeMismatchError{Want: KindText, Got: v.kind}
	}
	return v.str, nil
}

// Number returns the numeric content, or a TypeMismatchError if the value
// is text.
func (v Value) Number() (float64, error) {
	if v.kind != KindNumber {
		return 0, &TypeMismatchError{Want: KindNumber, Got: v.kind}
	}
	return v.num, nil
}

// String renders the value for display. Numeric values use the shortest
// decimal representation that round-trips.
func (v Value) String() string {
	if v.kind == KindNumber {
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
	return v.str
}
