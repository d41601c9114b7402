package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	page, pg := Paginate(items, 1, 20)
	assert.Len(t, page, 20)
	assert.Equal(t, 0, page[0])
	assert.Equal(t, Pagination{Page: 1, PerPage: 20, Total: 45, TotalPages: 3}, pg)

	page, pg = Paginate(items, 3, 20)
	assert.Len(t, page, 5)
	assert.Equal(t, 40, page[0])

	page, _ = Paginate(items, 9, 20)
	assert.Empty(t, page)

	// Zero values fall back to the defaults.
	page, pg = Paginate(items, 0, 0)
	assert.Len(t, page, 20)
	assert.Equal(t, 1, pg.Page)
	assert.Equal(t, 20, pg.PerPage)
}
