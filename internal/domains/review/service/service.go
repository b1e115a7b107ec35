package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	bookrepo "bookreview-backend/internal/domains/book/repository"
	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/domains/review/repository"
	userrepo "bookreview-backend/internal/domains/user/repository"
	"bookreview-backend/pkg/cache"
	"bookreview-backend/pkg/logger"
)

// bookListCachePattern matches the catalog list pages, which embed the
// cached rating and go stale on every accepted review.
const bookListCachePattern = "books:list:*"

type reviewService struct {
	repo     repository.ReviewRepository
	bookRepo bookrepo.BookRepository
	userRepo userrepo.UserRepository
	cache    cache.Cache
}

func NewReviewService(
	repo repository.ReviewRepository,
	bookRepo bookrepo.BookRepository,
	userRepo userrepo.UserRepository,
	c cache.Cache,
) ServiceInterface {
	return &reviewService{
		repo:     repo,
		bookRepo: bookRepo,
		userRepo: userRepo,
		cache:    c,
	}
}

// =====================================================
// SUBMIT
// =====================================================

func (s *reviewService) Submit(ctx context.Context, userID uuid.UUID, req model.SubmitReviewRequest) (*model.ReviewResponse, error) {
	// Step 1: Validate request (rating bounds, required book id)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: The target book must exist.
	if _, err := s.bookRepo.GetByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	// Step 3: Fast-path duplicate check. The UNIQUE(user_id, book_id)
	// constraint behind Create is the real guarantee; this only gives a
	// cheaper answer for the common case.
	_, err := s.repo.GetByUserAndBook(ctx, userID, req.BookID)
	if err == nil {
		return nil, model.ErrAlreadyReviewed
	}
	if !errors.Is(err, model.ErrReviewNotFound) {
		return nil, fmt.Errorf("check existing review: %w", err)
	}

	// Step 4: Insert
	rv := &model.Review{
		ID:        uuid.New(),
		UserID:    userID,
		BookID:    req.BookID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}

	// Step 5: Recompute the book's rating as the mean over the FULL
	// review set. A failure here is surfaced: the review is stored but
	// the aggregate was not refreshed.
	if err := s.recomputeBookRating(ctx, req.BookID); err != nil {
		return nil, err
	}

	// Step 6: Rating changed, so cached catalog pages are stale.
	if err := s.cache.DeletePattern(ctx, bookListCachePattern); err != nil {
		logger.Error("invalidate book list cache", err)
	}

	// Step 7: Attach reviewer info for the response.
	resp := model.ReviewResponse{
		ID:        rv.ID,
		BookID:    rv.BookID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}
	if u, err := s.userRepo.GetByID(ctx, userID); err == nil {
		resp.User = model.UserInfo{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
	} else {
		resp.User = model.UserInfo{ID: userID}
	}

	return &resp, nil
}

func (s *reviewService) recomputeBookRating(ctx context.Context, bookID uuid.UUID) error {
	mean, _, err := s.repo.AverageRating(ctx, bookID)
	if err != nil {
		return fmt.Errorf("recompute rating: %w", err)
	}

	// Stored unrounded: the column must always equal the arithmetic
	// mean, and the rating filters compare against it.
	if err := s.bookRepo.UpdateRating(ctx, bookID, mean); err != nil {
		return fmt.Errorf("store recomputed rating: %w", err)
	}

	return nil
}

// =====================================================
// LIST
// =====================================================

func (s *reviewService) ListForBook(ctx context.Context, bookID uuid.UUID) ([]model.ReviewResponse, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	resp := make([]model.ReviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		resp = append(resp, rv.ToResponse())
	}

	return resp, nil
}
