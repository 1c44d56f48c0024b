package pivot

import "strings"

// KeySeparator joins grouping-field values into a composite key. Values
// containing the separator are not escaped, so such values can collide
// across groups; callers choose grouping fields accordingly.
const KeySeparator = "|"

// DeriveKey builds the composite grouping key for a row by joining its
// values for the grouping fields, in the given order. Grouping fields must
// be text-valued; a numeric or missing field is an error.
func DeriveKey(row *Row, groupFields []string) (string, error) {
	var b strings.Builder
	for i, field := range groupFields {
		s, err := row.Text(field)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString(KeySeparator)
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// KeyLabel returns the header label for the key column, the grouping
// field names joined by the key separator (e.g. "CARRIER|ORIGIN").
func KeyLabel(groupFields []string) string {
	return strings.Join(groupFields, KeySeparator)
}
