package service

import (
	"context"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/review/model"
)

type ServiceInterface interface {
	// Submit records a review for the authenticated user. One review
	// per user per book; a second attempt fails with
	// model.ErrAlreadyReviewed and leaves the book rating untouched.
	// On success the book's cached rating is recomputed from the full
	// review set before returning.
	Submit(ctx context.Context, userID uuid.UUID, req model.SubmitReviewRequest) (*model.ReviewResponse, error)

	// ListForBook returns a book's reviews in submission order, with
	// reviewer info attached.
	ListForBook(ctx context.Context, bookID uuid.UUID) ([]model.ReviewResponse, error)
}
