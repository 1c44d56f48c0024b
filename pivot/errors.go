package pivot

import "fmt"

// MissingFieldError reports a row that lacks a field referenced by the
// grouping, measured, or filter configuration. The aggregators treat this
// as a contract violation and abort the call rather than skipping the row.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("row is missing field %q", e.Field)
}

// TypeMismatchError reports a field whose value kind does not match what
// grouping, measuring, or filtering expects. Field may be empty when the
// error is raised by a bare Value accessor and filled in by the caller.
type TypeMismatchError struct {
	Field string
	Want  Kind
	Got   Kind
}

func (e *TypeMismatchError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("expected %s value, got %s", e.Want, e.Got)
	}
	return fmt.Sprintf("field %q: expected %s value, got %s", e.Field, e.Want, e.Got)
}

// fieldError attaches a field name to accessor errors so the caller sees
// which column was at fault.
func fieldError(field string, err error) error {
	if tm, ok := err.(*TypeMismatchError); ok && tm.Field == "" {
		return &TypeMismatchError{Field: field, Want: tm.Want, Got: tm.Got}
	}
	return err
}
