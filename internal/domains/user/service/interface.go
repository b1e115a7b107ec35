package service

import (
	"context"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/user/model"
)

type ServiceInterface interface {
	// Register creates an account with role=user, hashes the password
	// and returns the public profile plus a 7-day token.
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials and issues a token.
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)

	// GetProfile returns the public profile of a user.
	GetProfile(ctx context.Context, id uuid.UUID) (*model.UserDTO, error)

	// UpdateProfile changes name/avatar. Allowed for the user themself
	// or an admin; anyone else gets model.ErrForbidden.
	UpdateProfile(ctx context.Context, callerID uuid.UUID, callerRole string, id uuid.UUID, req model.UpdateProfileRequest) (*model.UserDTO, error)
}
