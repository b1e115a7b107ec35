package model

import (
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	reviewmodel "bookreview-backend/internal/domains/review/model"
)

// PageSize is the fixed number of books per catalog page. Clients cannot
// change it.
const PageSize = 8

// Rating bounds of the 1-5 star scale. Filters default to the full range
// so the rating predicate is always part of the query.
const (
	RatingFloor   = 0
	RatingCeiling = 5
)

// sortColumns whitelists the public sort keys and maps them to their SQL
// columns. Anything outside this map is rejected before a query runs.
var sortColumns = map[string]string{
	"title":     "title",
	"author":    "author",
	"createdAt": "created_at",
	"rating":    "rating",
}

// ========================================
// LIST / QUERY
// ========================================

// ListBooksRequest carries the raw query-string values of GET /books.
// Call Normalize to turn them into validated query parameters.
type ListBooksRequest struct {
	Page      string `form:"page"`
	Search    string `form:"search"`
	Genre     string `form:"genre"`
	Author    string `form:"author"`
	MinRating string `form:"minRating"`
	MaxRating string `form:"maxRating"`
	SortBy    string `form:"sortBy"`
}

// ListBooksParams is the normalized form consumed by the repository.
type ListBooksParams struct {
	Page      int
	Search    string
	Genres    []string
	Author    string
	MinRating float64
	MaxRating float64

	SortColumn string
	SortDesc   bool
}

// Normalize applies the defaulting and whitelisting rules:
//   - page: positive integer, anything else (missing, junk, <1) becomes 1
//   - genre: comma-separated list, blank entries dropped
//   - minRating/maxRating: numeric, default 0 and 5
//   - sortBy: one of title/author/createdAt/rating, optionally prefixed
//     with "-" for descending; default "-createdAt". Unknown fields fail
//     with ErrInvalidSortField before any data access.
func (r ListBooksRequest) Normalize() (ListBooksParams, error) {
	p := ListBooksParams{
		Page:      1,
		Search:    strings.TrimSpace(r.Search),
		Author:    strings.TrimSpace(r.Author),
		MinRating: RatingFloor,
		MaxRating: RatingCeiling,
	}

	if n, err := strconv.Atoi(strings.TrimSpace(r.Page)); err == nil && n > 0 {
		p.Page = n
	}

	for _, g := range strings.Split(r.Genre, ",") {
		if g = strings.TrimSpace(g); g != "" {
			p.Genres = append(p.Genres, g)
		}
	}

	if v, err := strconv.ParseFloat(strings.TrimSpace(r.MinRating), 64); err == nil {
		p.MinRating = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(r.MaxRating), 64); err == nil {
		p.MaxRating = v
	}

	sortBy := strings.TrimSpace(r.SortBy)
	if sortBy == "" {
		sortBy = "-createdAt"
	}
	if strings.HasPrefix(sortBy, "-") {
		p.SortDesc = true
		sortBy = sortBy[1:]
	}
	col, ok := sortColumns[sortBy]
	if !ok {
		return ListBooksParams{}, ErrInvalidSortField
	}
	p.SortColumn = col

	return p, nil
}

// ListBooksResponse is the paginated catalog envelope. AvailableGenres is
// always the unfiltered distinct-genre facet, regardless of active filters.
type ListBooksResponse struct {
	Books           []Book   `json:"books"`
	Page            int      `json:"page"`
	TotalPages      int      `json:"totalPages"`
	TotalBooks      int      `json:"totalBooks"`
	AvailableGenres []string `json:"availableGenres"`
}

// ========================================
// DETAIL
// ========================================

// BookDetailResponse is a book plus its reviews with reviewer info.
type BookDetailResponse struct {
	Book
	Reviews []reviewmodel.ReviewResponse `json:"reviews"`
}

// ========================================
// CREATE / UPDATE
// ========================================

// CreateBookRequest is bound from the multipart form of POST /books.
// Genre is a comma-separated list; the optional cover file is handled
// separately by the handler.
type CreateBookRequest struct {
	Title       string `form:"title"`
	Author      string `form:"author"`
	Genre       string `form:"genre"`
	Description string `form:"description"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Genre, validation.Required),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	)
}

// GenreList splits the comma-separated genre field, dropping blanks.
func (r CreateBookRequest) GenreList() []string {
	var genres []string
	for _, g := range strings.Split(r.Genre, ",") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// UpdateBookRequest carries partial updates; nil fields are left alone.
type UpdateBookRequest struct {
	Title       *string `form:"title"`
	Author      *string `form:"author"`
	Genre       *string `form:"genre"`
	Description *string `form:"description"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Author, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	)
}
