package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"bookreview-backend/internal/domains/book/model"
)

const bookColumns = `id, title, author, genres, description, cover_url, rating, created_at, updated_at`

type postgresBookRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBookRepository(pool *pgxpool.Pool) BookRepository {
	return &postgresBookRepository{pool: pool}
}

// ========================================
// WRITE PATH
// ========================================

func (r *postgresBookRepository) Create(ctx context.Context, b *model.Book) error {
	query := `
		INSERT INTO books (id, title, author, genres, description, cover_url, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Title,
		b.Author,
		b.Genres,
		b.Description,
		b.CoverURL,
		b.Rating,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

func (r *postgresBookRepository) Update(ctx context.Context, b *model.Book) error {
	query := `
		UPDATE books
		SET title = $2, author = $3, genres = $4, description = $5, cover_url = $6, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Title,
		b.Author,
		b.Genres,
		b.Description,
		b.CoverURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

func (r *postgresBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

func (r *postgresBookRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	result, err := r.pool.Exec(ctx, `UPDATE books SET rating = $2, updated_at = NOW() WHERE id = $1`, id, rating)
	if err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

// ========================================
// READ PATH
// ========================================

func (r *postgresBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = $1`, bookColumns)

	b := &model.Book{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Genres,
		&b.Description,
		&b.CoverURL,
		&b.Rating,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return b, nil
}

// buildWhereClause assembles the filter predicates. The rating range is
// always present; the rest only when the caller supplied them.
func buildWhereClause(params model.ListBooksParams) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if params.Search != "" {
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE $%d OR author ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}

	if len(params.Genres) > 0 {
		conditions = append(conditions, fmt.Sprintf("genres && $%d", argIndex))
		args = append(args, pq.Array(params.Genres))
		argIndex++
	}

	if params.Author != "" {
		conditions = append(conditions, fmt.Sprintf("author ILIKE $%d", argIndex))
		args = append(args, "%"+params.Author+"%")
		argIndex++
	}

	conditions = append(conditions,
		fmt.Sprintf("rating >= $%d", argIndex),
		fmt.Sprintf("rating <= $%d", argIndex+1))
	args = append(args, params.MinRating, params.MaxRating)

	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *postgresBookRepository) List(ctx context.Context, params model.ListBooksParams) ([]model.Book, int, error) {
	whereClause, args := buildWhereClause(params)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM books %s`, whereClause)

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	direction := "ASC"
	if params.SortDesc {
		direction = "DESC"
	}

	// Secondary id sort keeps pagination deterministic when the sort
	// column has ties.
	query := fmt.Sprintf(`
		SELECT %s
		FROM books
		%s
		ORDER BY %s %s, id ASC
		LIMIT $%d OFFSET $%d
	`, bookColumns, whereClause, params.SortColumn, direction, len(args)+1, len(args)+2)

	offset := (params.Page - 1) * model.PageSize
	args = append(args, model.PageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Author,
			&b.Genres,
			&b.Description,
			&b.CoverURL,
			&b.Rating,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, total, nil
}

func (r *postgresBookRepository) DistinctGenres(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT unnest(genres) AS genre FROM books ORDER BY genre`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}
	defer rows.Close()

	genres := []string{}
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate genres: %w", err)
	}

	return genres, nil
}
