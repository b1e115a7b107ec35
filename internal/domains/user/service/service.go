package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/user/model"
	"bookreview-backend/internal/domains/user/repository"
	"bookreview-backend/pkg/jwt"
	"bookreview-backend/pkg/password"
)

type userService struct {
	repo       repository.UserRepository
	jwtManager *jwt.Manager
}

func NewUserService(repo repository.UserRepository, jwtManager *jwt.Manager) ServiceInterface {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

// =====================================================
// REGISTER
// =====================================================

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Check email already exists.
	// Exact match as stored - no normalization (see DESIGN.md).
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, model.ErrEmailAlreadyExists
	}

	// Step 3: Hash password. Explicit call here, never a save hook,
	// so unrelated updates cannot re-hash an already-hashed value.
	passwordHash, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// Step 4: Create user entity
	now := time.Now()
	newUser := &model.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         model.RoleUser, // default role
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Step 5: Persist. The unique constraint on email closes the race
	// the ExistsByEmail pre-check leaves open.
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	// Step 6: Issue token
	token, err := s.jwtManager.Generate(newUser.ID, newUser.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &model.AuthResponse{
		User:  newUser.ToDTO(),
		Token: token,
	}, nil
}

// =====================================================
// LOGIN
// =====================================================

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Find user by email.
	// Unknown email and wrong password return the same error so an
	// attacker cannot probe which emails exist.
	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	// Step 3: Verify password
	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, model.ErrInvalidCredentials
	}

	// Step 4: Issue token
	token, err := s.jwtManager.Generate(u.ID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &model.AuthResponse{
		User:  u.ToDTO(),
		Token: token,
	}, nil
}

// =====================================================
// PROFILE
// =====================================================

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.UserDTO, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) UpdateProfile(
	ctx context.Context,
	callerID uuid.UUID,
	callerRole string,
	id uuid.UUID,
	req model.UpdateProfileRequest,
) (*model.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// self-or-admin gate
	if callerID != id && callerRole != model.RoleAdmin {
		return nil, model.ErrForbidden
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Avatar != nil {
		u.Avatar = req.Avatar
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	dto := u.ToDTO()
	return &dto, nil
}
