package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	p, err := ListBooksRequest{}.Normalize()
	require.NoError(t, err)

	assert.Equal(t, 1, p.Page)
	assert.Empty(t, p.Search)
	assert.Empty(t, p.Genres)
	assert.Equal(t, float64(RatingFloor), p.MinRating)
	assert.Equal(t, float64(RatingCeiling), p.MaxRating)
	assert.Equal(t, "created_at", p.SortColumn)
	assert.True(t, p.SortDesc, "default sort is newest first")
}

func TestNormalizePage(t *testing.T) {
	cases := map[string]int{
		"":     1,
		"abc":  1,
		"0":    1,
		"-3":   1,
		"2":    2,
		" 5 ":  5,
		"3.14": 1,
	}
	for raw, want := range cases {
		p, err := ListBooksRequest{Page: raw}.Normalize()
		require.NoError(t, err, "page %q", raw)
		assert.Equal(t, want, p.Page, "page %q", raw)
	}
}

func TestNormalizeGenreCSV(t *testing.T) {
	p, err := ListBooksRequest{Genre: "Fantasy, Sci-Fi,, Horror "}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, []string{"Fantasy", "Sci-Fi", "Horror"}, p.Genres)
}

func TestNormalizeRatingBounds(t *testing.T) {
	p, err := ListBooksRequest{MinRating: "2.5", MaxRating: "4"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, 2.5, p.MinRating)
	assert.Equal(t, 4.0, p.MaxRating)

	// junk falls back to the full range
	p, err = ListBooksRequest{MinRating: "low", MaxRating: "high"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.MinRating)
	assert.Equal(t, 5.0, p.MaxRating)
}

func TestNormalizeSortWhitelist(t *testing.T) {
	cases := []struct {
		sortBy string
		column string
		desc   bool
	}{
		{"title", "title", false},
		{"-title", "title", true},
		{"author", "author", false},
		{"createdAt", "created_at", false},
		{"-createdAt", "created_at", true},
		{"rating", "rating", false},
		{"-rating", "rating", true},
	}
	for _, tc := range cases {
		p, err := ListBooksRequest{SortBy: tc.sortBy}.Normalize()
		require.NoError(t, err, "sortBy %q", tc.sortBy)
		assert.Equal(t, tc.column, p.SortColumn, "sortBy %q", tc.sortBy)
		assert.Equal(t, tc.desc, p.SortDesc, "sortBy %q", tc.sortBy)
	}
}

func TestNormalizeRejectsUnknownSortField(t *testing.T) {
	for _, sortBy := range []string{"price", "-price", "id; DROP TABLE books", "TITLE"} {
		_, err := ListBooksRequest{SortBy: sortBy}.Normalize()
		assert.ErrorIs(t, err, ErrInvalidSortField, "sortBy %q", sortBy)
	}
}

func TestCreateBookRequestValidate(t *testing.T) {
	valid := CreateBookRequest{Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi"}
	assert.NoError(t, valid.Validate())

	assert.Error(t, CreateBookRequest{Author: "x", Genre: "y"}.Validate())
	assert.Error(t, CreateBookRequest{Title: "x", Genre: "y"}.Validate())
	assert.Error(t, CreateBookRequest{Title: "x", Author: "y"}.Validate())
}

func TestGenreList(t *testing.T) {
	req := CreateBookRequest{Genre: "Fantasy, , Adventure"}
	assert.Equal(t, []string{"Fantasy", "Adventure"}, req.GenreList())
}
