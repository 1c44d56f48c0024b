package pivot

import (
	"fmt"

	"github.com/google/btree"
)

// Accumulator holds the running aggregate state for one (group, measured
// field) pair. Mean is only meaningful after the owning Store has been
// finalized.
type Accumulator struct {
	Sum   float64
	Count int64
	Mean  float64
}

// groupEntry is one btree item: a composite key and its accumulators,
// one per measured field.
type groupEntry struct {
	key  string
	accs map[string]*Accumulator
}

func (g *groupEntry) Less(than btree.Item) bool {
	return g.key < than.(*groupEntry).key
}

// Store maps composite grouping keys to one Accumulator per measured
// field. The backing btree keeps keys in lexicographic order, so both
// aggregation paths emit sorted, diffable output. A Store is built for a
// fixed measured-field list; every key present holds the complete set of
// accumulators for that list.
//
// A Store is not safe for concurrent use. Two stores built over the same
// measured fields can be combined with Merge.
type Store struct {
	fields []string
	tree   *btree.BTree
}

const btreeDegree = 16

// NewStore creates an empty store for the given measured fields. The
// field order fixes the column order of emitted output.
func NewStore(measuredFields []string) *Store {
	return &Store{
		fields: append([]string(nil), measuredFields...),
		tree:   btree.New(btreeDegree),
	}
}

// Fields returns the measured fields in output order.
func (s *Store) Fields() []string {
	return s.fields
}

// Len returns the number of distinct keys in the store.
func (s *Store) Len() int {
	return s.tree.Len()
}

// getOrCreate returns the entry for key, creating it with a fresh
// zero-valued accumulator for every measured field the first time the
// key is seen. Creating all accumulators together keeps the entry
// symmetric across measured fields.
func (s *Store) getOrCreate(key string) *groupEntry {
	probe := &groupEntry{key: key}
	if item := s.tree.Get(probe); item != nil {
		return item.(*groupEntry)
	}
	entry := &groupEntry{key: key, accs: make(map[string]*Accumulator, len(s.fields))}
	for _, field := range s.fields {
		entry.accs[field] = &Accumulator{}
	}
	s.tree.ReplaceOrInsert(entry)
	return entry
}

// Fold adds the row's measured values to the accumulators for key. The
// row's values are validated before any state is touched, so a
// TypeMismatch or MissingField error leaves the store unchanged.
func (s *Store) Fold(key string, row *Row) error {
	vals := make([]float64, len(s.fields))
	for i, field := range s.fields {
		n, err := row.Number(field)
		if err != nil {
			return err
		}
		vals[i] = n
	}

	entry := s.getOrCreate(key)
	for i, field := range s.fields {
		acc := entry.accs[field]
		acc.Sum += vals[i]
		acc.Count++
	}
	return nil
}

// Finalize derives the mean for every accumulator in the store. Zero
// counts cannot arise from Fold, which creates accumulators only while
// folding a row into them; the guard covers misuse through Merge.
func (s *Store) Finalize() {
	s.tree.Ascend(func(item btree.Item) bool {
		for _, acc := range item.(*groupEntry).accs {
			if acc.Count > 0 {
				acc.Mean = acc.Sum / float64(acc.Count)
			}
		}
		return true
	})
}

// Get returns the accumulators for a composite key.
func (s *Store) Get(key string) (map[string]*Accumulator, bool) {
	item := s.tree.Get(&groupEntry{key: key})
	if item == nil {
		return nil, false
	}
	return item.(*groupEntry).accs, true
}

// Keys returns all composite keys in lexicographic order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, s.tree.Len())
	s.tree.Ascend(func(item btree.Item) bool {
		keys = append(keys, item.(*groupEntry).key)
		return true
	})
	return keys
}

// Ascend visits every (key, accumulators) pair in key order until fn
// returns false.
func (s *Store) Ascend(fn func(key string, accs map[string]*Accumulator) bool) {
	s.tree.Ascend(func(item btree.Item) bool {
		entry := item.(*groupEntry)
		return fn(entry.key, entry.accs)
	})
}

// Merge folds another store's accumulators into this one by summing
// matching (key, field) pairs and re-deriving all means. Both stores must
// have been built over the same measured-field list. Merging enables
// callers to aggregate partitioned inputs into per-partition stores and
// combine them afterwards.
func (s *Store) Merge(other *Store) error {
	if len(s.fields) != len(other.fields) {
		return fmt.Errorf("cannot merge stores with different measured fields: %v vs %v", s.fields, other.fields)
	}
	for i, field := range s.fields {
		if other.fields[i] != field {
			return fmt.Errorf("cannot merge stores with different measured fields: %v vs %v", s.fields, other.fields)
		}
	}

	other.tree.Ascend(func(item btree.Item) bool {
		src := item.(*groupEntry)
		dst := s.getOrCreate(src.key)
		for _, field := range s.fields {
			dst.accs[field].Sum += src.accs[field].Sum
			dst.accs[field].Count += src.accs[field].Count
		}
		return true
	})

	s.Finalize()
	return nil
}
