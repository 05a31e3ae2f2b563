package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name       string
		page, size int
		want       []int
		totalPages int
	}{
		{"first page", 1, 3, []int{1, 2, 3}, 3},
		{"last partial page", 3, 3, []int{7}, 3},
		{"past the end", 4, 3, []int{}, 3},
		{"page below one", 0, 3, []int{1, 2, 3}, 3},
		{"default size", 1, 0, []int{1, 2, 3, 4, 5, 6, 7}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(items, tt.page, tt.size)
			assert.Equal(t, tt.want, p.Items)
			assert.Equal(t, 7, p.Total)
			assert.Equal(t, tt.totalPages, p.TotalPages)
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate([]string{}, 1, 10)
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.TotalPages)
	assert.Equal(t, 1, p.Page)
}

func TestPaginateDoesNotAlias(t *testing.T) {
	items := []int{1, 2, 3}
	p := Paginate(items, 1, 2)
	p.Items[0] = 99
	assert.Equal(t, 1, items[0])
}

func TestPaginateHugeValues(t *testing.T) {
	items := []int{1, 2, 3}

	p := Paginate(items, math.MaxInt/5, 10)
	assert.Empty(t, p.Items)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 1, p.TotalPages)

	p = Paginate(items, 2, math.MaxInt)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.TotalPages)

	p = Paginate(items, 1, math.MaxInt)
	assert.Equal(t, []int{1, 2, 3}, p.Items)

	p = Paginate(items, math.MaxInt, math.MaxInt)
	assert.Empty(t, p.Items)
}
