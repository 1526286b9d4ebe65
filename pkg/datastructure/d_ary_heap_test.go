package datastructure

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractsInRankOrder(t *testing.T) {
	for _, d := range []int{2, 4, 8} {
		h := NewdAryHeap[float64](d)
		rng := rand.New(rand.NewSource(int64(d)))
		ranks := make([]float64, 500)
		for i := range ranks {
			ranks[i] = float64(rng.Intn(100))
			h.Insert(ranks[i], ranks[i])
		}
		sort.Float64s(ranks)

		for i := range ranks {
			got, err := h.ExtractMin()
			require.NoError(t, err)
			assert.Equal(t, ranks[i], got.GetItem(), "d=%d, pop %d", d, i)
		}
		assert.True(t, h.IsEmpty())
	}
}

func TestMinHeapEqualRanksAreFIFO(t *testing.T) {
	h := NewdAryHeap[string](4)
	h.Insert(5, "a")
	h.Insert(1, "first")
	h.Insert(5, "b")
	h.Insert(5, "c")
	h.Insert(1, "second")
	h.Insert(5, "d")

	want := []string{"first", "second", "a", "b", "c", "d"}
	got := []string{}
	for !h.IsEmpty() {
		item, err := h.ExtractMin()
		require.NoError(t, err)
		got = append(got, item.GetItem())
	}
	assert.Equal(t, want, got)
}

func TestMinHeapEmpty(t *testing.T) {
	h := NewdAryHeap[int](2)
	_, err := h.ExtractMin()
	assert.ErrorIs(t, err, ErrEmptyHeap)

	h.Insert(1, 1)
	assert.False(t, h.IsEmpty())
	h.Clear()
	assert.True(t, h.IsEmpty())
}
