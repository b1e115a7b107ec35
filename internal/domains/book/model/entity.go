package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCoverPath is used when a book is created without a cover upload.
const DefaultCoverPath = "/default-book-cover.jpg"

// Book represents a catalog entry.
//
// Rating is NOT authoritative - it is a cached mean of the book's review
// ratings (0 when no reviews exist), recomputed after every review
// submission and re-derived on detail reads.
type Book struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Author string    `json:"author"`
	// Plain []string so pgx decodes text[] natively in either wire
	// format; pq.Array is only used on the filter-argument side.
	Genres      []string `json:"genre"`
	Description string   `json:"description"`
	CoverURL    string   `json:"cover_image"`
	Rating      float64  `json:"rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
