package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is a single user's rating of a book. The pair (UserID, BookID)
// is unique - enforced by a database constraint, not just the service
// pre-check.
type Review struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	BookID    uuid.UUID `json:"book_id"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewWithUser is a review joined with its author's public info.
type ReviewWithUser struct {
	Review
	UserName   string
	UserAvatar *string
}
