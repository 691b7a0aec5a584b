package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/emredk/scholaris/internal/app/models"
	"github.com/emredk/scholaris/internal/app/models/dto"
	"github.com/emredk/scholaris/internal/pkg/apperrors"
	"github.com/emredk/scholaris/internal/pkg/auth"
)

// fakeUserStore implements the user store slices the services need.
type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) UsernameExists(_ context.Context, username string) (bool, error) {
	_, err := s.GetByUsername(context.Background(), username)
	return err == nil, nil
}

func (s *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) Update(_ context.Context, user *models.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) List(_ context.Context, offset, limit int) ([]*models.User, error) {
	var out []*models.User
	for id := int64(1); id < s.nextID && len(out) < offset+limit; id++ {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	return out[offset:], nil
}

func (s *fakeUserStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

// fakeTokenIssuer returns a canned token.
type fakeTokenIssuer struct{}

func (fakeTokenIssuer) GenerateToken(userID int64, isAdmin bool) (string, int, error) {
	return "test-token", 3600, nil
}

func newAuthFixture() (*AuthService, *fakeUserStore) {
	store := newFakeUserStore()
	return NewAuthService(store, fakeTokenIssuer{}, zerolog.Nop()), store
}

func TestRegisterCreatesRegularUser(t *testing.T) {
	svc, store := newAuthFixture()

	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "secret1", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "secret1"))
	assert.Len(t, store.users, 1)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{Username: "alice", Email: "other@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)

	_, err = svc.Register(ctx, dto.RegisterRequest{Username: "bob", Email: "alice@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
}

func TestCreateAdminSetsAdminFlag(t *testing.T) {
	svc, _ := newAuthFixture()

	user, err := svc.CreateAdmin(context.Background(), dto.CreateAdminRequest{
		Username: "root",
		Email:    "root@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "test-token", resp.Token)
		assert.Equal(t, 3600, resp.ExpiresIn)
		assert.Equal(t, "alice", resp.User.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "nope-wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown username reports the same error", func(t *testing.T) {
		_, err := svc.Login(ctx, dto.LoginRequest{Username: "mallory", Password: "secret1"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}
