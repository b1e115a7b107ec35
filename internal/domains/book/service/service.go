package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/domains/book/repository"
	reviewmodel "bookreview-backend/internal/domains/review/model"
	reviewrepo "bookreview-backend/internal/domains/review/repository"
	"bookreview-backend/internal/infrastructure/storage"
	"bookreview-backend/pkg/cache"
	"bookreview-backend/pkg/logger"
)

const (
	genresCacheKey  = "books:genres"
	genresCacheTTL  = 10 * time.Minute
	listCachePrefix = "books:list:"
	listCacheTTL    = 2 * time.Minute
)

type bookService struct {
	repo       repository.BookRepository
	reviewRepo reviewrepo.ReviewRepository
	cache      cache.Cache
	storage    ObjectStorage
	processor  *storage.ImageProcessor
	queue      CoverQueue
}

func NewBookService(
	repo repository.BookRepository,
	reviewRepo reviewrepo.ReviewRepository,
	c cache.Cache,
	objStorage ObjectStorage,
	processor *storage.ImageProcessor,
	queue CoverQueue,
) ServiceInterface {
	return &bookService{
		repo:       repo,
		reviewRepo: reviewRepo,
		cache:      c,
		storage:    objStorage,
		processor:  processor,
		queue:      queue,
	}
}

// =====================================================
// LIST
// =====================================================

func (s *bookService) List(ctx context.Context, req model.ListBooksRequest) (*model.ListBooksResponse, error) {
	// Normalize rejects unknown sort fields before any data access.
	params, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	cacheKey := listCacheKey(params)
	cached := &model.ListBooksResponse{}
	if found, err := s.cache.Get(ctx, cacheKey, cached); err == nil && found {
		return cached, nil
	}

	books, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	genres, err := s.availableGenres(ctx)
	if err != nil {
		return nil, err
	}

	resp := &model.ListBooksResponse{
		Books:           books,
		Page:            params.Page,
		TotalPages:      (total + model.PageSize - 1) / model.PageSize,
		TotalBooks:      total,
		AvailableGenres: genres,
	}

	// Cache failures must not fail the read path.
	if err := s.cache.Set(ctx, cacheKey, resp, listCacheTTL); err != nil {
		logger.Error("cache book list", err)
	}

	return resp, nil
}

// listCacheKey encodes every query dimension so distinct queries never
// collide.
func listCacheKey(p model.ListBooksParams) string {
	return fmt.Sprintf("%sp%d:s=%s:g=%v:a=%s:r=%g-%g:o=%s:d=%t",
		listCachePrefix, p.Page, p.Search, p.Genres, p.Author,
		p.MinRating, p.MaxRating, p.SortColumn, p.SortDesc)
}

// availableGenres is the unfiltered facet, cached because it changes only
// on catalog writes.
func (s *bookService) availableGenres(ctx context.Context) ([]string, error) {
	genres := []string{}
	if found, err := s.cache.Get(ctx, genresCacheKey, &genres); err == nil && found {
		return genres, nil
	}

	genres, err := s.repo.DistinctGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}

	if err := s.cache.Set(ctx, genresCacheKey, genres, genresCacheTTL); err != nil {
		logger.Error("cache genres", err)
	}

	return genres, nil
}

// =====================================================
// DETAIL
// =====================================================

func (s *bookService) GetDetail(ctx context.Context, id uuid.UUID) (*model.BookDetailResponse, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByBook(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}

	// Derive the rating from the actual review set so a stale cached
	// column can never surface on the detail page. With no reviews the
	// stored value is left as-is.
	if len(reviews) > 0 {
		var sum float64
		for _, rv := range reviews {
			sum += rv.Rating
		}
		b.Rating = sum / float64(len(reviews))
	}

	resp := &model.BookDetailResponse{
		Book:    *b,
		Reviews: make([]reviewmodel.ReviewResponse, 0, len(reviews)),
	}
	for _, rv := range reviews {
		resp.Reviews = append(resp.Reviews, rv.ToResponse())
	}

	return resp, nil
}

// =====================================================
// CREATE / UPDATE / DELETE
// =====================================================

func (s *bookService) Create(ctx context.Context, req model.CreateBookRequest, cover *CoverUpload) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	b := &model.Book{
		ID:          uuid.New(),
		Title:       req.Title,
		Author:      req.Author,
		Genres:      req.GenreList(),
		Description: req.Description,
		CoverURL:    model.DefaultCoverPath,
		Rating:      0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if cover != nil {
		url, err := s.uploadOriginalCover(ctx, b.ID, cover)
		if err != nil {
			return nil, err
		}
		b.CoverURL = url
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	if cover != nil {
		if err := s.queue.EnqueueProcessCover(b.ID.String()); err != nil {
			// The original cover is already stored and served; variants
			// can be regenerated later.
			logger.Error("enqueue cover processing", err)
		}
	}

	s.invalidateCatalogCache(ctx)
	return b, nil
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest, cover *CoverUpload) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Author != nil {
		b.Author = *req.Author
	}
	if req.Genre != nil {
		b.Genres = model.CreateBookRequest{Genre: *req.Genre}.GenreList()
	}
	if req.Description != nil {
		b.Description = *req.Description
	}

	if cover != nil {
		url, err := s.uploadOriginalCover(ctx, b.ID, cover)
		if err != nil {
			return nil, err
		}
		b.CoverURL = url
	}
	b.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	if cover != nil {
		if err := s.queue.EnqueueProcessCover(b.ID.String()); err != nil {
			logger.Error("enqueue cover processing", err)
		}
	}

	s.invalidateCatalogCache(ctx)
	return b, nil
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Covers are gone-forever data tied to the row; reviews go with the
	// row via ON DELETE CASCADE.
	if err := s.storage.DeleteByPrefix(ctx, coverPrefix(id)); err != nil {
		logger.Error("delete cover objects", err)
	}

	s.invalidateCatalogCache(ctx)
	return nil
}

// invalidateCatalogCache drops list pages and the genre facet after any
// catalog write.
func (s *bookService) invalidateCatalogCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, listCachePrefix+"*"); err != nil {
		logger.Error("invalidate book list cache", err)
	}
	if err := s.cache.Delete(ctx, genresCacheKey); err != nil {
		logger.Error("invalidate genres cache", err)
	}
}
