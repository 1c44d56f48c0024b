package pivot

import (
	"time"

	"github.com/datatally/pivot/pivot/events"
)

// Pivot aggregates a fully materialized row collection into a Store. The
// rows slice is read-only to the call and never retained. Unlike Scan
// there is no row bound; every row is examined exactly once, in order.
//
// Both the text and numeric filters are applied to every row. The store
// is always finalized before being returned, so callers can chain further
// in-process analysis without reparsing emitted output. Keys iterate in
// lexicographic order.
func Pivot(rows []*Row, opts Options) (*Store, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	store := NewStore(opts.MeasuredFields)

	var folded int64
	for _, row := range rows {
		ok, err := foldFiltered(store, row, opts)
		if err != nil {
			opts.Collector.AddTiming(events.ErrorAggregation, start,
				map[string]interface{}{"error": err})
			return nil, err
		}
		if ok {
			folded++
		}
	}

	store.Finalize()

	opts.Collector.AddTiming(events.PivotCompleted, start, map[string]interface{}{
		"rows.total":  len(rows),
		"rows.folded": folded,
		"groups":      store.Len(),
	})

	return store, nil
}
