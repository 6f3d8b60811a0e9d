package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginateConcatenationReproducesList(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 20, 25} {
		items := seq(n)
		_, first := Paginate(items, 1, PageSize)
		assert.Equal(t, (n+PageSize-1)/PageSize, first.TotalPages, "n=%d", n)

		var joined []int
		for p := 1; p <= first.TotalPages; p++ {
			page, info := Paginate(items, p, PageSize)
			assert.Equal(t, p, info.Number)
			assert.Equal(t, p < first.TotalPages, info.HasNext)
			assert.Equal(t, p > 1, info.HasPrevious)
			joined = append(joined, page...)
		}
		if n == 0 {
			assert.Empty(t, joined)
		} else {
			assert.Equal(t, items, joined, "n=%d", n)
		}
	}
}

func TestPaginateClamps(t *testing.T) {
	items := seq(25)

	page, info := Paginate(items, 99, PageSize)
	assert.Equal(t, 3, info.Number)
	assert.Equal(t, []int{20, 21, 22, 23, 24}, page)
	assert.False(t, info.HasNext)

	page, info = Paginate(items, 0, PageSize)
	assert.Equal(t, 1, info.Number)
	assert.Len(t, page, 10)

	page, info = Paginate(items, -4, PageSize)
	assert.Equal(t, 1, info.Number)
	assert.Equal(t, 0, page[0])

	page, info = Paginate([]int{}, 3, PageSize)
	assert.Empty(t, page)
	assert.Equal(t, PageInfo{Number: 1, TotalPages: 0}, info)
}
