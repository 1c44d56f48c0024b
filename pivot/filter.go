package pivot

// TextFilter restricts rows by the values of text fields. Include maps a
// field to the values a row must have to be kept; Exclude maps a field to
// values that disqualify a row. Empty or nil maps mean unrestricted.
// A field that appears in both maps gets both predicates applied, so any
// single failing predicate rejects the row.
type TextFilter struct {
	Include map[string][]string
	Exclude map[string][]string
}

// NumberFilter is the numeric counterpart of TextFilter.
type NumberFilter struct {
	Include map[string][]float64
	Exclude map[string][]float64
}

// Passes reports whether the row satisfies every include and exclude
// predicate. Evaluation short-circuits on the first failure. Filtering a
// field that is missing from the row or not text-valued is an error, not
// a silent rejection.
func (f TextFilter) Passes(row *Row) (bool, error) {
	for field, allowed := range f.Include {
		s, err := row.Text(field)
		if err != nil {
			return false, err
		}
		if !containsString(allowed, s) {
			return false, nil
		}
	}
	for field, forbidden := range f.Exclude {
		s, err := row.Text(field)
		if err != nil {
			return false, err
		}
		if containsString(forbidden, s) {
			return false, nil
		}
	}
	return true, nil
}

// Passes reports whether the row satisfies every numeric include and
// exclude predicate, with the same error contract as TextFilter.Passes.
func (f NumberFilter) Passes(row *Row) (bool, error) {
	for field, allowed := range f.Include {
		n, err := row.Number(field)
		if err != nil {
			return false, err
		}
		if !containsFloat(allowed, n) {
			return false, nil
		}
	}
	for field, forbidden := range f.Exclude {
		n, err := row.Number(field)
		if err != nil {
			return false, err
		}
		if containsFloat(forbidden, n) {
			return false, nil
		}
	}
	return true, nil
}

// Empty reports whether the filter imposes no restrictions.
func (f TextFilter) Empty() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

// Empty reports whether the filter imposes no restrictions.
func (f NumberFilter) Empty() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

func containsString(vals []string, s string) bool {
	for _, v := range vals {
		if v == s {
			return true
		}
	}
	return false
}

func containsFloat(vals []float64, f float64) bool {
	for _, v := range vals {
		if v == f {
			return true
		}
	}
	return false
}
