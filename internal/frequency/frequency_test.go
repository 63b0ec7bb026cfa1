package frequency

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount_KeepsFirstSeenOrder(t *testing.T) {
	table := Count([]string{"b", "a", "", "b", "c", "a", "b"})

	assert.Equal(t, []Entry{{"b", 3}, {"a", 2}, {"c", 1}}, table.Entries)
	assert.Equal(t, 6, table.Total())
}

func TestCount_CaseSensitive(t *testing.T) {
	table := Count([]string{"This", "this", "This"})

	assert.Equal(t, map[string]int{"This": 2, "this": 1}, table.Map())
}

func TestCount_Empty(t *testing.T) {
	table := Count(nil)

	assert.Equal(t, 0, table.Len())
	assert.NotNil(t, table.Entries)
}

func TestAlphabetical(t *testing.T) {
	table := Alphabetical(Count([]string{"sentence", "a", "Zebra", "é", "is", "a"}))

	keys := table.Keys()
	assert.Equal(t, []string{"Zebra", "a", "is", "sentence", "é"}, keys)
	assert.True(t, sort.StringsAreSorted(keys))
}

func TestByOccurrence_StableTies(t *testing.T) {
	alpha := Alphabetical(Count([]string{"this", "is", "a", "yet", "this", "is", "a", "this", "is"}))
	got := ByOccurrence(alpha)

	assert.Equal(t, []Entry{{"is", 3}, {"this", 3}, {"a", 2}, {"yet", 1}}, got.Entries)

	// Sorting an already sorted table changes nothing
	assert.Equal(t, got, ByOccurrence(got))
	// The input is left untouched
	assert.Equal(t, []string{"a", "is", "this", "yet"}, alpha.Keys())
}

func TestApply_Deterministic(t *testing.T) {
	tokens := []string{"d", "c", "b", "a", "c", "b", "d"}

	first := Apply(OrderOccurrence, Count(tokens))
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Apply(OrderOccurrence, Count(tokens)))
	}
	assert.Equal(t, []string{"b", "c", "d", "a"}, first.Keys())

	counts := make([]int, 0, first.Len())
	for _, e := range first.Entries {
		counts = append(counts, e.Count)
	}
	assert.True(t, sort.SliceIsSorted(counts, func(i, j int) bool { return counts[i] > counts[j] }))
}

func TestParseOrder(t *testing.T) {
	order, err := ParseOrder("occurrence")
	require.NoError(t, err)
	assert.Equal(t, OrderOccurrence, order)

	order, err = ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, OrderAlphabetical, order)

	_, err = ParseOrder("random")
	assert.Error(t, err)
}

func TestTable_GetAndTop(t *testing.T) {
	table := Apply(OrderOccurrence, Count([]string{"x", "y", "y", "z", "z", "z"}))

	count, ok := table.Get("y")
	assert.True(t, ok)
	assert.Equal(t, 2, count)

	_, ok = table.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"z", "y"}, table.Top(2).Keys())
	assert.Equal(t, 3, table.Top(10).Len())
}

func TestTable_JSONKeepsOrder(t *testing.T) {
	table := Apply(OrderOccurrence, Count([]string{"b", "a", "b", "\"q\""}))

	data, err := json.Marshal(table)
	require.NoError(t, err)
	assert.Equal(t, `{"b":2,"\"q\"":1,"a":1}`, string(data))

	var decoded Table
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, table.Entries, decoded.Entries)

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &decoded))
}

func TestTable_JSONEmpty(t *testing.T) {
	data, err := json.Marshal(Table{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
