package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreview-backend/internal/domains/user/model"
	"bookreview-backend/pkg/jwt"
	"bookreview-backend/pkg/password"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return model.ErrEmailAlreadyExists
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return model.ErrUserNotFound
	}
	f.users[u.ID] = u
	return nil
}

func newTestService() (ServiceInterface, *fakeUserRepo, *jwt.Manager) {
	repo := newFakeUserRepo()
	jwtManager := jwt.NewManager("test-secret")
	return NewUserService(repo, jwtManager), repo, jwtManager
}

func registerRequest() model.RegisterRequest {
	return model.RegisterRequest{
		Name:     "Paul Atreides",
		Email:    "paul@arrakis.example",
		Password: "muaddib1",
	}
}

// ========================================
// REGISTER
// ========================================

func TestRegister(t *testing.T) {
	svc, repo, jwtManager := newTestService()

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.Equal(t, "Paul Atreides", resp.User.Name)
	assert.Equal(t, model.RoleUser, resp.User.Role)

	// Token carries the new user's identity.
	claims, err := jwtManager.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)

	// Stored credential is a hash, never the plaintext.
	stored := repo.users[resp.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "muaddib1", stored.PasswordHash)
	assert.True(t, password.Verify("muaddib1", stored.PasswordHash))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	req := registerRequest()
	req.Name = "Someone Else"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, model.ErrEmailAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	svc, repo, _ := newTestService()

	cases := []model.RegisterRequest{
		{Name: "", Email: "a@b.example", Password: "longenough"},
		{Name: "x", Email: "not-an-email", Password: "longenough"},
		{Name: "x", Email: "a@b.example", Password: "short"},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), req)
		assert.Error(t, err, "%+v must be rejected", req)
	}
	assert.Empty(t, repo.users)
}

// ========================================
// LOGIN
// ========================================

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "paul@arrakis.example",
		Password: "muaddib1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, unknownEmailErr := svc.Login(context.Background(), model.LoginRequest{
		Email:    "nobody@arrakis.example",
		Password: "muaddib1",
	})
	_, wrongPasswordErr := svc.Login(context.Background(), model.LoginRequest{
		Email:    "paul@arrakis.example",
		Password: "wrong-pass",
	})

	assert.ErrorIs(t, unknownEmailErr, model.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPasswordErr, model.ErrInvalidCredentials)
	// Same error value means the response body cannot leak which emails
	// are registered.
	assert.Equal(t, unknownEmailErr, wrongPasswordErr)
}

// ========================================
// PROFILE
// ========================================

func TestUpdateProfileSelfOrAdmin(t *testing.T) {
	svc, _, _ := newTestService()

	owner, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	other, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Feyd",
		Email:    "feyd@giedi.example",
		Password: "harkonnen",
	})
	require.NoError(t, err)

	newName := "Muad'Dib"

	// Stranger with role=user is rejected.
	_, err = svc.UpdateProfile(context.Background(), other.User.ID, model.RoleUser, owner.User.ID,
		model.UpdateProfileRequest{Name: &newName})
	assert.ErrorIs(t, err, model.ErrForbidden)

	// Self is allowed.
	dto, err := svc.UpdateProfile(context.Background(), owner.User.ID, model.RoleUser, owner.User.ID,
		model.UpdateProfileRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Muad'Dib", dto.Name)

	// Admin can update anyone.
	adminName := "Renamed By Admin"
	dto, err = svc.UpdateProfile(context.Background(), other.User.ID, model.RoleAdmin, owner.User.ID,
		model.UpdateProfileRequest{Name: &adminName})
	require.NoError(t, err)
	assert.Equal(t, "Renamed By Admin", dto.Name)
}
