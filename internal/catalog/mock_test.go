package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(p Page) []string {
	out := make([]string, len(p.Results))
	for i, m := range p.Results {
		out[i] = m.ID
	}
	return out
}

func TestMock_ListPopular_SortedByPopularity(t *testing.T) {
	p, err := NewMock().ListPopular(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 6, p.TotalResults)
	assert.Equal(t, []string{"1", "2", "6", "3", "4", "5"}, ids(p))
}

func TestMock_ListTopRated_SortedByRating(t *testing.T) {
	p, err := NewMock().ListTopRated(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1", "2", "5", "4", "6"}, ids(p))
}

func TestMock_Search_TitleOrGenre(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	p, err := m.Search(ctx, "BATMAN", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, ids(p))

	p, err = m.Search(ctx, "science", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "6"}, ids(p))

	p, err = m.Search(ctx, "zzz", 1)
	require.NoError(t, err)
	assert.Empty(t, p.Results)

	p, err = m.Search(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, p.Results, 6)
}

func TestMock_GetByID(t *testing.T) {
	m := NewMock()

	mv, err := m.GetByID(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Oppenheimer", mv.Title)
	assert.Equal(t, 180, mv.DurationMinutes)

	_, err = m.GetByID(context.Background(), "999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMock_Delay_RespectsContext(t *testing.T) {
	m := NewMock(WithDelay(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := m.GetByID(ctx, "1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMock_WithMovies(t *testing.T) {
	m := NewMock(WithMovies([]Movie{{ID: "x", Title: "X"}}))
	mv, err := m.GetByID(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "X", mv.Title)

	_, err = m.GetByID(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNotFound)
}
