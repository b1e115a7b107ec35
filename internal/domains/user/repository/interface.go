package repository

import (
	"context"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/user/model"
)

// UserRepository is the user data access contract. Constructed once at
// startup and injected into the service.
type UserRepository interface {
	// Create inserts a new user. Returns model.ErrEmailAlreadyExists
	// when the email unique constraint is violated.
	Create(ctx context.Context, u *model.User) error

	// GetByID returns a user or model.ErrUserNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByEmail matches the stored email exactly (case-sensitive).
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// ExistsByEmail is the cheap pre-check before Create; the unique
	// constraint remains the source of truth.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update persists profile changes (name, avatar).
	Update(ctx context.Context, u *model.User) error
}
