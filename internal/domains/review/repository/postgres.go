package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"bookreview-backend/internal/domains/review/model"
)

type postgresReviewRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &postgresReviewRepository{pool: pool}
}

func (r *postgresReviewRepository) Create(ctx context.Context, rv *model.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, book_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		rv.ID,
		rv.UserID,
		rv.BookID,
		rv.Rating,
		rv.Comment,
		rv.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.ErrAlreadyReviewed
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *postgresReviewRepository) GetByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*model.Review, error) {
	query := `
		SELECT id, user_id, book_id, rating, comment, created_at
		FROM reviews
		WHERE user_id = $1 AND book_id = $2
	`

	rv := &model.Review{}
	err := r.pool.QueryRow(ctx, query, userID, bookID).Scan(
		&rv.ID,
		&rv.UserID,
		&rv.BookID,
		&rv.Rating,
		&rv.Comment,
		&rv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return rv, nil
}

func (r *postgresReviewRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]model.ReviewWithUser, error) {
	query := `
		SELECT r.id, r.user_id, r.book_id, r.rating, r.comment, r.created_at,
		       u.name, u.avatar
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.book_id = $1
		ORDER BY r.created_at ASC, r.id
	`

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.ReviewWithUser{}
	for rows.Next() {
		var rv model.ReviewWithUser
		if err := rows.Scan(
			&rv.ID,
			&rv.UserID,
			&rv.BookID,
			&rv.Rating,
			&rv.Comment,
			&rv.CreatedAt,
			&rv.UserName,
			&rv.UserAvatar,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

func (r *postgresReviewRepository) AverageRating(ctx context.Context, bookID uuid.UUID) (float64, int, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE book_id = $1
	`

	var (
		avg   decimal.Decimal
		count int
	)
	if err := r.pool.QueryRow(ctx, query, bookID).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("failed to average ratings: %w", err)
	}

	mean, _ := avg.Float64()
	return mean, count, nil
}
