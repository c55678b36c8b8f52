package authoring

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/mentorat/authoring/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blocks(ids ...string) []models.ContentBlock {
	out := make([]models.ContentBlock, len(ids))
	for i, id := range ids {
		out[i] = models.ContentBlock{ID: id, Type: models.BlockTypeText, Order: i, Data: &models.TextData{}}
	}
	return out
}

func blockIDs(list []models.ContentBlock) []string {
	ids := make([]string, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	return ids
}

func blockOrders(list []models.ContentBlock) []int {
	orders := make([]int, len(list))
	for i := range list {
		orders[i] = list[i].Order
	}
	return orders
}

func TestMove(t *testing.T) {
	tests := []struct {
		name          string
		source        int
		target        int
		expectedIDs   []string
		expectedError bool
	}{
		{name: "second to first", source: 1, target: 0, expectedIDs: []string{"B", "A", "C"}},
		{name: "first to last", source: 0, target: 2, expectedIDs: []string{"B", "C", "A"}},
		{name: "target past the end is clamped", source: 0, target: 10, expectedIDs: []string{"B", "C", "A"}},
		{name: "negative target is clamped", source: 2, target: -3, expectedIDs: []string{"C", "A", "B"}},
		{name: "same index", source: 1, target: 1, expectedIDs: []string{"A", "B", "C"}},
		{name: "source out of range", source: 3, target: 0, expectedError: true},
		{name: "negative source", source: -1, target: 0, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := blocks("A", "B", "C")

			result, err := Move(list, tt.source, tt.target)

			if tt.expectedError {
				assert.True(t, errors.Is(err, models.ErrNotFound))
				assert.Equal(t, []string{"A", "B", "C"}, blockIDs(list))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedIDs, blockIDs(result))
			assert.Equal(t, []int{0, 1, 2}, blockOrders(result))
			assert.Equal(t, []string{"A", "B", "C"}, blockIDs(list), "input must not be reordered")
		})
	}
}

func TestMove_SameIndexRepairsPositions(t *testing.T) {
	list := blocks("A", "B", "C")
	list[0].Order = 5
	list[2].Order = 5

	result, err := Move(list, 1, 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, blockIDs(result))
	assert.Equal(t, []int{0, 1, 2}, blockOrders(result))
}

func TestRemove(t *testing.T) {
	list := blocks("A", "B", "C", "D")

	result, removed, err := Remove(list, 1)

	require.NoError(t, err)
	assert.Equal(t, "B", removed.ID)
	assert.Equal(t, []string{"A", "C", "D"}, blockIDs(result))
	assert.Equal(t, []int{0, 1, 2}, blockOrders(result))
	assert.Len(t, list, 4)

	_, _, err = Remove(list, 4)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestAppend(t *testing.T) {
	list := blocks("A", "B")

	result := Append(list, models.ContentBlock{ID: "C", Order: 42})

	assert.Equal(t, []string{"A", "B", "C"}, blockIDs(result))
	assert.Equal(t, 2, result[2].Order)
	assert.Len(t, list, 2)
}

func TestIsContiguous(t *testing.T) {
	list := blocks("A", "B", "C")
	assert.True(t, IsContiguous(list))

	list[1].Order = 2
	assert.False(t, IsContiguous(list))

	Renumber(list)
	assert.True(t, IsContiguous(list))
	assert.True(t, IsContiguous([]models.Module{}))
}

func TestReorder_RandomSequencesStayContiguous(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	list := blocks("A", "B", "C", "D", "E")
	next := 0

	for step := 0; step < 500; step++ {
		var err error
		switch op := rng.Intn(3); {
		case op == 0:
			next++
			list = Append(list, models.ContentBlock{ID: string(rune('a' + next%26)), Type: models.BlockTypeText})
		case op == 1 && len(list) > 0:
			list, _, err = Remove(list, rng.Intn(len(list)))
		case len(list) > 0:
			list, err = Move(list, rng.Intn(len(list)), rng.Intn(len(list)+2)-1)
		}
		require.NoError(t, err)
		require.True(t, IsContiguous(list), "step %d", step)
	}
}
