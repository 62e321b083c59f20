package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClampsAndWhitelists(t *testing.T) {
	sortable := []string{"name", "created_at"}

	p := Normalize(Params{Page: 0, PerPage: 500, Sort: "price; DROP TABLE"}, sortable, "created_at")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)
	assert.Equal(t, "created_at", p.Sort)

	p = Normalize(Params{Page: 3, PerPage: 0, Sort: "name", Desc: true}, sortable, "created_at")
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, "name", p.Sort)
	assert.Equal(t, "name DESC", p.OrderClause())
	assert.Equal(t, 2*DefaultPerPage, p.Offset())
}

func TestMetaFor(t *testing.T) {
	meta := MetaFor(Params{Page: 2, PerPage: 10}, 25)
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 3, meta.LastPage)

	meta = MetaFor(Params{Page: 1, PerPage: 10}, 0)
	assert.Equal(t, 1, meta.LastPage)
}
