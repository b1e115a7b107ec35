package repository

import (
	"context"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/book/model"
)

// BookRepository is the persistence contract for the catalog.
type BookRepository interface {
	Create(ctx context.Context, b *model.Book) error

	// GetByID returns model.ErrBookNotFound when no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// List returns one page of books matching params plus the total
	// matching count (ignoring pagination).
	List(ctx context.Context, params model.ListBooksParams) ([]model.Book, int, error)

	// DistinctGenres returns every genre present in the catalog,
	// sorted, with no filters applied.
	DistinctGenres(ctx context.Context) ([]string, error)

	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateRating overwrites the cached mean rating.
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
}
