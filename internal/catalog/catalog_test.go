package catalog

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movies(n int) []Movie {
	out := make([]Movie, n)
	for i := range out {
		out[i] = Movie{ID: strconv.Itoa(i + 1)}
	}
	return out
}

func TestPaginate(t *testing.T) {
	all := movies(45)

	p := Paginate(all, 1)
	assert.Equal(t, 1, p.Page)
	assert.Len(t, p.Results, PageSize)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 45, p.TotalResults)
	assert.Equal(t, "1", p.Results[0].ID)

	p = Paginate(all, 3)
	assert.Len(t, p.Results, 5)
	assert.Equal(t, "41", p.Results[0].ID)

	p = Paginate(all, 4)
	assert.NotNil(t, p.Results)
	assert.Empty(t, p.Results)

	p = Paginate(all, 0)
	assert.Equal(t, 1, p.Page)

	p = Paginate(nil, 1)
	assert.Equal(t, 0, p.TotalPages)
	assert.Empty(t, p.Results)

	for _, page := range []int{math.MaxInt64 / 10, math.MaxInt64/PageSize + 2, math.MaxInt64} {
		require.NotPanics(t, func() { p = Paginate(all, page) }, "page %d", page)
		assert.Equal(t, page, p.Page)
		assert.Empty(t, p.Results)
		assert.Equal(t, 45, p.TotalResults)
	}
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 8.5, RoundRating(8.456))
	assert.Equal(t, 7.0, RoundRating(6.96))
	assert.Equal(t, 0.0, RoundRating(-1))
	assert.Equal(t, 10.0, RoundRating(12))
	assert.Equal(t, 0.0, RoundRating(math.NaN()))
	assert.Equal(t, 10.0, RoundRating(math.Inf(1)))
}

func TestReleaseYear(t *testing.T) {
	assert.Equal(t, "2024", Movie{ReleaseDate: "2024-02-29"}.ReleaseYear())
	assert.Equal(t, "TBA", Movie{ReleaseDate: UnknownRelease}.ReleaseYear())
}
