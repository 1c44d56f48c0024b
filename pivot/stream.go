package pivot

import (
	"fmt"
	"time"

	"github.com/datatally/pivot/pivot/events"
)

// RowSource produces rows one at a time from a sequential input. A source
// is consumed in a single forward pass; it never needs to know its length
// or support random access.
type RowSource interface {
	// Next advances to the next row, returning false at end of input or
	// on error.
	Next() bool

	// Row returns the current row. Only valid after Next returned true,
	// and only until the next call to Next.
	Row() *Row

	// Err returns the error that terminated iteration, if any.
	Err() error

	// Close releases any resources
	Close() error
}

// NoLimit makes Scan consume the source to exhaustion.
const NoLimit int64 = -1

// Options configures an aggregation call. GroupFields and MeasuredFields
// are required; everything else is optional.
type Options struct {
	// GroupFields are the text fields whose joined values identify a
	// group, in key order.
	GroupFields []string

	// MeasuredFields are the numeric fields to sum, count, and average
	// per group, in output column order.
	MeasuredFields []string

	// MaxRows bounds how many rows Scan examines. NoLimit (-1) means
	// unbounded. Ignored by Pivot, which always sees the whole slice.
	MaxRows int64

	// TextFilter and NumberFilter restrict which rows are folded. Rows
	// are counted as scanned whether or not they pass.
	TextFilter   TextFilter
	NumberFilter NumberFilter

	// Collector receives timing events when non-nil.
	Collector *events.Collector
}

func (o Options) validate() error {
	if len(o.GroupFields) == 0 {
		return fmt.Errorf("at least one grouping field is required")
	}
	if len(o.MeasuredFields) == 0 {
		return fmt.Errorf("at least one measured field is required")
	}
	return nil
}

// Scan aggregates rows from a streaming source into a Store. Memory use
// is bounded by the number of distinct groups times measured fields; only
// one row is resident at a time. It returns the number of rows examined,
// which includes rows rejected by the filters.
//
// When opts.MaxRows is non-negative, scanning stops as soon as that many
// rows have been examined and no further rows are read from the source.
// Structural errors (missing fields, wrong-kind values) abort the scan and
// are returned with a nil store.
func Scan(source RowSource, opts Options) (int64, *Store, error) {
	if err := opts.validate(); err != nil {
		return 0, nil, err
	}

	start := time.Now()
	store := NewStore(opts.MeasuredFields)

	var scanned, folded int64
	earlyStop := false
	for {
		if opts.MaxRows >= 0 && scanned >= opts.MaxRows {
			earlyStop = true
			break
		}
		if !source.Next() {
			break
		}
		scanned++

		row := source.Row()
		ok, err := foldFiltered(store, row, opts)
		if err != nil {
			opts.Collector.AddTiming(events.ErrorAggregation, start,
				map[string]interface{}{"error": err})
			return scanned, nil, err
		}
		if ok {
			folded++
		}
	}

	if err := source.Err(); err != nil {
		return scanned, nil, fmt.Errorf("row source failed after %d rows: %w", scanned, err)
	}

	store.Finalize()

	opts.Collector.AddTiming(events.ScanCompleted, start, map[string]interface{}{
		"rows.scanned": scanned,
		"rows.folded":  folded,
		"groups":       store.Len(),
		"early.stop":   earlyStop,
	})

	return scanned, store, nil
}

// foldFiltered runs one row through both filters and, if it passes, keys
// and folds it. It reports whether the row was folded.
func foldFiltered(store *Store, row *Row, opts Options) (bool, error) {
	pass, err := opts.TextFilter.Passes(row)
	if err != nil || !pass {
		return false, err
	}
	pass, err = opts.NumberFilter.Passes(row)
	if err != nil || !pass {
		return false, err
	}

	key, err := DeriveKey(row, opts.GroupFields)
	if err != nil {
		return false, err
	}
	if err := store.Fold(key, row); err != nil {
		return false, err
	}
	return true, nil
}

// SliceSource adapts an in-memory row slice to the RowSource interface,
// mainly for tests and for replaying materialized data through Scan.
type SliceSource struct {
	rows []*Row
	pos  int
}

// NewSliceSource creates a source over rows.
func NewSliceSource(rows []*Row) *SliceSource {
	return &SliceSource{rows: rows}
}

// Next advances to the next row.
func (s *SliceSource) Next() bool {
	if s.pos >= len(s.rows) {
		return false
	}
	s.pos++
	return true
}

// Row returns the current row.
func (s *SliceSource) Row() *Row {
	return s.rows[s.pos-1]
}

// Err always returns nil; a slice cannot fail mid-iteration.
func (s *SliceSource) Err() error {
	return nil
}

// Close is a no-op.
func (s *SliceSource) Close() error {
	return nil
}
