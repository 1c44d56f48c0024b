package pivot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func measuredRow(carrier string, passengers, seats float64) *Row {
	return NewRow().
		SetText("CARRIER", carrier).
		SetNumber("PASSENGERS", passengers).
		SetNumber("SEATS", seats)
}

func TestStoreFoldCreatesSymmetricAccumulators(t *testing.T) {
	store := NewStore([]string{"PASSENGERS", "SEATS"})

	require.NoError(t, store.Fold("UA|JFK", measuredRow("UA", 100, 120)))

	accs, ok := store.Get("UA|JFK")
	require.True(t, ok)
	// Every measured field gets an accumulator the moment the key exists.
	require.Len(t, accs, 2)
	assert.Equal(t, 100.0, accs["PASSENGERS"].Sum)
	assert.Equal(t, int64(1), accs["PASSENGERS"].Count)
	assert.Equal(t, 120.0, accs["SEATS"].Sum)
	assert.Equal(t, int64(1), accs["SEATS"].Count)
}

func TestStoreFoldAccumulates(t *testing.T) {
	store := NewStore([]string{"PASSENGERS"})

	require.NoError(t, store.Fold("UA|JFK", measuredRow("UA", 100, 0)))
	require.NoError(t, store.Fold("UA|JFK", measuredRow("UA", 50, 0)))
	require.NoError(t, store.Fold("AA|LAX", measuredRow("AA", 30, 0)))

	store.Finalize()

	accs, _ := store.Get("UA|JFK")
	assert.Equal(t, 150.0, accs["PASSENGERS"].Sum)
	assert.Equal(t, int64(2), accs["PASSENGERS"].Count)
	assert.Equal(t, 75.0, accs["PASSENGERS"].Mean)

	accs, _ = store.Get("AA|LAX")
	assert.Equal(t, 30.0, accs["PASSENGERS"].Sum)
	assert.Equal(t, int64(1), accs["PASSENGERS"].Count)
	assert.Equal(t, 30.0, accs["PASSENGERS"].Mean)
}

func TestStoreFoldErrorLeavesStoreUnchanged(t *testing.T) {
	store := NewStore([]string{"PASSENGERS", "SEATS"})

	// SEATS is missing, so the fold must fail before any state changes.
	bad := NewRow().SetText("CARRIER", "UA").SetNumber("PASSENGERS", 100)
	err := store.Fold("UA|JFK", bad)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "SEATS", missing.Field)
	assert.Equal(t, 0, store.Len())

	// A text-valued measured field is a type mismatch.
	bad = NewRow().SetText("PASSENGERS", "lots").SetNumber("SEATS", 1)
	err = store.Fold("UA|JFK", bad)
	var tm *TypeMismatchError
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, 0, store.Len())
}

func TestStoreKeysSorted(t *testing.T) {
	store := NewStore([]string{"PASSENGERS"})

	for _, key := range []string{"UA|ORD", "AA|LAX", "UA|JFK", "DL|ATL"} {
		require.NoError(t, store.Fold(key, measuredRow("X", 1, 0)))
	}

	assert.Equal(t, []string{"AA|LAX", "DL|ATL", "UA|JFK", "UA|ORD"}, store.Keys())
	assert.Equal(t, 4, store.Len())
}

func TestStoreAscendStops(t *testing.T) {
	store := NewStore([]string{"PASSENGERS"})
	require.NoError(t, store.Fold("A", measuredRow("A", 1, 0)))
	require.NoError(t, store.Fold("B", measuredRow("B", 1, 0)))
	require.NoError(t, store.Fold("C", measuredRow("C", 1, 0)))

	var visited []string
	store.Ascend(func(key string, accs map[string]*Accumulator) bool {
		visited = append(visited, key)
		return len(visited) < 2
	})
	assert.Equal(t, []string{"A", "B"}, visited)
}

func TestStoreMerge(t *testing.T) {
	left := NewStore([]string{"PASSENGERS"})
	require.NoError(t, left.Fold("UA|JFK", measuredRow("UA", 100, 0)))
	require.NoError(t, left.Fold("AA|LAX", measuredRow("AA", 30, 0)))
	left.Finalize()

	right := NewStore([]string{"PASSENGERS"})
	require.NoError(t, right.Fold("UA|JFK", measuredRow("UA", 50, 0)))
	require.NoError(t, right.Fold("DL|ATL", measuredRow("DL", 70, 0)))
	right.Finalize()

	require.NoError(t, left.Merge(right))

	assert.Equal(t, []string{"AA|LAX", "DL|ATL", "UA|JFK"}, left.Keys())

	accs, _ := left.Get("UA|JFK")
	assert.Equal(t, 150.0, accs["PASSENGERS"].Sum)
	assert.Equal(t, int64(2), accs["PASSENGERS"].Count)
	assert.Equal(t, 75.0, accs["PASSENGERS"].Mean)

	// Keys only present in the right store are copied over.
	accs, _ = left.Get("DL|ATL")
	assert.Equal(t, 70.0, accs["PASSENGERS"].Sum)
	assert.Equal(t, 70.0, accs["PASSENGERS"].Mean)

	// The right store is not modified.
	accs, _ = right.Get("UA|JFK")
	assert.Equal(t, 50.0, accs["PASSENGERS"].Sum)
}

func TestStoreMergeFieldMismatch(t *testing.T) {
	left := NewStore([]string{"PASSENGERS"})
	right := NewStore([]string{"SEATS"})
	require.Error(t, left.Merge(right))

	reordered := NewStore([]string{"SEATS", "PASSENGERS"})
	both := NewStore([]string{"PASSENGERS", "SEATS"})
	require.Error(t, both.Merge(reordered))
}
