package service

import (
	"context"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/book/model"
)

// CoverUpload is a decoded multipart cover file.
type CoverUpload struct {
	Data        []byte
	ContentType string
}

// ObjectStorage is the slice of the storage layer the book service needs.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// CoverQueue enqueues background cover processing.
type CoverQueue interface {
	EnqueueProcessCover(bookID string) error
}

type ServiceInterface interface {
	// List runs the catalog query: filter, sort, paginate, and attach
	// the unfiltered genre facet. An unknown sortBy fails with
	// model.ErrInvalidSortField without touching the database.
	List(ctx context.Context, req model.ListBooksRequest) (*model.ListBooksResponse, error)

	// GetDetail returns a book with its reviews. The rating in the
	// response is recomputed from the review set, not the cached column.
	GetDetail(ctx context.Context, id uuid.UUID) (*model.BookDetailResponse, error)

	// Create adds a book (admin only, enforced at the route). A nil
	// cover falls back to the default cover path.
	Create(ctx context.Context, req model.CreateBookRequest, cover *CoverUpload) (*model.Book, error)

	Update(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest, cover *CoverUpload) (*model.Book, error)

	// Delete removes the book row and every stored cover object.
	Delete(ctx context.Context, id uuid.UUID) error

	// ProcessCover generates the resized cover variants. Runs on the
	// worker, triggered by the cover:process task.
	ProcessCover(ctx context.Context, bookID uuid.UUID) error
}
