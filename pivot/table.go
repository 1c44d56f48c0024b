package pivot

import (
	"fmt"
	"strconv"
)

// TableWriter accepts ordered rows of string cells and persists them as a
// delimited table. The csvio package provides the file-backed
// implementation; tests substitute in-memory writers.
type TableWriter interface {
	Write(record []string) error
}

// Aggregate column suffixes, in emission order per measured field.
var aggregateSuffixes = []string{"_Sum", "_Count", "_Mean"}

// Header builds the output header row: the key label followed by
// Sum/Count/Mean columns for each measured field, e.g.
// ["CARRIER|ORIGIN", "PASSENGERS_Sum", "PASSENGERS_Count", "PASSENGERS_Mean"].
func Header(keyLabel string, measuredFields []string) []string {
	header := make([]string, 0, 1+3*len(measuredFields))
	header = append(header, keyLabel)
	for _, field := range measuredFields {
		for _, suffix := range aggregateSuffixes {
			header = append(header, field+suffix)
		}
	}
	return header
}

// EmitTable writes the store as a delimited table: one header row, then
// one row per composite key in store order, each holding the key text and
// the formatted sum, count, and mean per measured field. The store must
// already be finalized. A write failure surfaces to the caller; the store
// itself stays valid.
func EmitTable(store *Store, keyLabel string, w TableWriter) error {
	if err := w.Write(Header(keyLabel, store.Fields())); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	var writeErr error
	store.Ascend(func(key string, accs map[string]*Accumulator) bool {
		record := make([]string, 0, 1+3*len(store.Fields()))
		record = append(record, key)
		for _, field := range store.Fields() {
			acc := accs[field]
			record = append(record,
				formatFloat(acc.Sum),
				strconv.FormatInt(acc.Count, 10),
				formatFloat(acc.Mean))
		}
		if err := w.Write(record); err != nil {
			writeErr = fmt.Errorf("writing row for key %q: %w", key, err)
			return false
		}
		return true
	})
	return writeErr
}

// formatFloat renders an aggregate as plain decimal text, using the
// shortest representation that round-trips. No exponent notation, so the
// output stays spreadsheet-friendly.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
