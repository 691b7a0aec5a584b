package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/emredk/scholaris/internal/app/auth"
	"github.com/emredk/scholaris/internal/app/models"
	"github.com/emredk/scholaris/internal/app/models/dto"
	"github.com/emredk/scholaris/internal/pkg/apperrors"
	pkgauth "github.com/emredk/scholaris/internal/pkg/auth"
)

func newUserFixture(t *testing.T) (*UserService, *fakeUserStore) {
	t.Helper()
	store := newFakeUserStore()
	return NewUserService(store, zerolog.Nop()), store
}

func seedUser(t *testing.T, store *fakeUserStore, username string, isAdmin bool) *models.User {
	t.Helper()
	hashed, err := pkgauth.HashPassword("secret1")
	require.NoError(t, err)
	user := &models.User{Username: username, Email: username + "@example.com", Password: hashed, IsAdmin: isAdmin}
	require.NoError(t, store.Create(context.Background(), user))
	return user
}

func strPtr(s string) *string { return &s }

func TestUserUpdateSelf(t *testing.T) {
	svc, store := newUserFixture(t)
	user := seedUser(t, store, "alice", false)

	updated, err := svc.Update(context.Background(), auth.Actor{UserID: user.ID}, user.ID, dto.UpdateUserRequest{
		Email:    strPtr("new@example.com"),
		Password: strPtr("fresh-secret"),
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "alice", updated.Username)
	assert.True(t, pkgauth.CheckPassword(updated.Password, "fresh-secret"))
}

func TestUserUpdateRejectsOtherUser(t *testing.T) {
	svc, store := newUserFixture(t)
	alice := seedUser(t, store, "alice", false)
	bob := seedUser(t, store, "bob", false)

	_, err := svc.Update(context.Background(), auth.Actor{UserID: bob.ID}, alice.ID, dto.UpdateUserRequest{
		Email: strPtr("hijack@example.com"),
	})
	assert.ErrorIs(t, err, apperrors.ErrCannotUpdateOtherUser)
}

func TestUserUpdateAllowsAdminOnAnyone(t *testing.T) {
	svc, store := newUserFixture(t)
	admin := seedUser(t, store, "root", true)
	alice := seedUser(t, store, "alice", false)

	updated, err := svc.Update(context.Background(), auth.Actor{UserID: admin.ID, IsAdmin: true}, alice.ID, dto.UpdateUserRequest{
		Username: strPtr("alice2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
}

func TestUserUpdateRejectsTakenUsername(t *testing.T) {
	svc, store := newUserFixture(t)
	seedUser(t, store, "alice", false)
	bob := seedUser(t, store, "bob", false)

	_, err := svc.Update(context.Background(), auth.Actor{UserID: bob.ID}, bob.ID, dto.UpdateUserRequest{
		Username: strPtr("alice"),
	})
	assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
}

func TestUserDelete(t *testing.T) {
	svc, store := newUserFixture(t)
	admin := seedUser(t, store, "root", true)
	alice := seedUser(t, store, "alice", false)
	otherAdmin := seedUser(t, store, "root2", true)
	actor := auth.Actor{UserID: admin.ID, IsAdmin: true}

	t.Run("admin deletes regular user", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), actor, alice.ID))
		_, ok := store.users[alice.ID]
		assert.False(t, ok)
	})

	t.Run("admin target is never deletable", func(t *testing.T) {
		err := svc.Delete(context.Background(), actor, otherAdmin.ID)
		assert.ErrorIs(t, err, apperrors.ErrCannotDeleteAdmin)
	})

	t.Run("non-admin actor is rejected", func(t *testing.T) {
		bob := seedUser(t, store, "bob", false)
		err := svc.Delete(context.Background(), auth.Actor{UserID: bob.ID}, bob.ID)
		assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
	})
}

func TestUserList(t *testing.T) {
	svc, store := newUserFixture(t)

	t.Run("empty collection on page one", func(t *testing.T) {
		_, err := svc.List(context.Background(), 1, 5)
		assert.ErrorIs(t, err, apperrors.ErrNothingFound)
	})

	for _, name := range []string{"u1", "u2", "u3", "u4", "u5", "u6"} {
		seedUser(t, store, name, false)
	}

	t.Run("first page", func(t *testing.T) {
		resp, err := svc.List(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.Len(t, resp.Users, 5)
		assert.Equal(t, 2, resp.TotalPages)
		assert.Equal(t, int64(6), resp.TotalItems)
	})

	t.Run("page past the end", func(t *testing.T) {
		_, err := svc.List(context.Background(), 3, 5)
		assert.ErrorIs(t, err, apperrors.ErrPageNotFound)
	})
}
