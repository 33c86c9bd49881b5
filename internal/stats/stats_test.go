package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menu(items map[string]Item) func(string) (Item, bool) {
	return func(id string) (Item, bool) {
		it, ok := items[id]
		return it, ok
	}
}

func TestCheckPairing(t *testing.T) {
	assert.NoError(t, CheckPairing(nil, nil))
	assert.NoError(t, CheckPairing([]string{"a"}, []int{2}))
	assert.ErrorIs(t, CheckPairing([]string{"a", "b"}, []int{1}), ErrLengthMismatch)
}

func TestBreakdownAggregatesByCategory(t *testing.T) {
	lookup := menu(map[string]Item{
		"cake":  {Category: "dessert", Price: decimal.NewFromInt(5)},
		"tart":  {Category: "dessert", Price: decimal.RequireFromString("2.5")},
		"salad": {Category: "salad", Price: decimal.RequireFromString("8.5")},
	})

	b := NewBreakdown()
	require.NoError(t, b.Add([]string{"cake", "salad"}, []int{2, 1}, lookup))
	require.NoError(t, b.Add([]string{"cake", "tart"}, []int{2, 2}, lookup))

	rows := b.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "dessert", rows[0].Category)
	assert.Equal(t, int64(6), rows[0].Quantity)
	assert.True(t, decimal.NewFromInt(25).Equal(rows[0].Revenue), rows[0].Revenue.String())
	assert.Equal(t, "salad", rows[1].Category)
	assert.True(t, decimal.RequireFromString("8.5").Equal(rows[1].Revenue))
}

func TestBreakdownSkipsUnknownItems(t *testing.T) {
	b := NewBreakdown()
	require.NoError(t, b.Add([]string{"gone"}, []int{3}, menu(nil)))
	assert.Empty(t, b.Rows())
}

func TestBreakdownRejectsMismatchedRecord(t *testing.T) {
	lookup := menu(map[string]Item{"cake": {Category: "dessert", Price: decimal.NewFromInt(5)}})

	b := NewBreakdown()
	err := b.Add([]string{"cake", "cake"}, []int{1}, lookup)
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.Empty(t, b.Rows())
}
