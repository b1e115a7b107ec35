package repository

import (
	"context"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/review/model"
)

// ReviewRepository is the persistence contract for reviews.
type ReviewRepository interface {
	// Create inserts a review. A duplicate (user, book) pair returns
	// model.ErrAlreadyReviewed via the unique constraint.
	Create(ctx context.Context, rv *model.Review) error

	// GetByUserAndBook returns model.ErrReviewNotFound when the user
	// has not reviewed the book.
	GetByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*model.Review, error)

	// ListByBook returns all reviews of a book in submission order,
	// joined with reviewer name and avatar.
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]model.ReviewWithUser, error)

	// AverageRating computes the mean rating over the full review set
	// of a book and the review count. Zero mean when no reviews exist.
	AverageRating(ctx context.Context, bookID uuid.UUID) (float64, int, error)
}
