// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ukj0ng/bookstore-api/internal/platform/apperr"
	"github.com/Ukj0ng/bookstore-api/internal/platform/sec"
)

// fakeUserRepository is an in-memory UserRepository for service tests.
type fakeUserRepository struct {
	users  map[int64]*User
	nextID int64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[int64]*User{}, nextID: 1}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id int64) (*User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.FindByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUserRepository) Create(_ context.Context, user *User) error {
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) UpdateEmail(_ context.Context, userID int64, email string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.Email = email
	return nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID int64, newHash string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepository) {
	t.Helper()
	tokens, err := sec.NewTokenService("test-secret-key-at-least-32-bytes!!", "bookstore-api", time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	repo := newFakeUserRepository()
	return NewService(repo, tokens), repo
}

func TestRegister_AssignsDefaultRole(t *testing.T) {
	service, _ := newTestService(t)

	user, err := service.Register(context.Background(), RegisterInput{
		Username: "reader",
		Email:    "reader@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleUser, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
}

func TestRegister_RejectsDuplicateUsername(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{Username: "reader", Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = service.Register(ctx, RegisterInput{Username: "reader", Email: "b@example.com", Password: "password123"})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeConflict, apperr.As(err).Code)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{Username: "first", Email: "same@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = service.Register(ctx, RegisterInput{Username: "second", Email: "same@example.com", Password: "password123"})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeConflict, apperr.As(err).Code)
}

func TestLogin_DistinguishesUnknownUserFromWrongPassword(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{Username: "reader", Email: "reader@example.com", Password: "correct-password"})
	require.NoError(t, err)

	_, err = service.Login(ctx, LoginInput{Username: "nobody", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, "User not found", apperr.As(err).Message)
	assert.Equal(t, 401, apperr.As(err).HTTPStatus)

	_, err = service.Login(ctx, LoginInput{Username: "reader", Password: "wrong-password"})
	require.Error(t, err)
	assert.Equal(t, "Password does not match", apperr.As(err).Message)
	assert.Equal(t, 401, apperr.As(err).HTTPStatus)
}

func TestLogin_IssuesVerifiableTokenPair(t *testing.T) {
	tokens, err := sec.NewTokenService("test-secret-key-at-least-32-bytes!!", "bookstore-api", time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	service := NewService(newFakeUserRepository(), tokens)
	ctx := context.Background()

	_, err = service.Register(ctx, RegisterInput{Username: "reader", Email: "reader@example.com", Password: "correct-password"})
	require.NoError(t, err)

	result, err := service.Login(ctx, LoginInput{Username: "reader", Password: "correct-password"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", result.Tokens.TokenType)
	assert.EqualValues(t, 3600, result.Tokens.ExpiresIn)

	claims, err := tokens.VerifyAccess(result.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "reader", claims.Username)
	assert.Equal(t, sec.RoleUser, claims.Role)

	// The refresh token must not pass as an access token.
	_, err = tokens.VerifyAccess(result.Tokens.RefreshToken)
	assert.Error(t, err)
}

func TestRefresh_RotatesPairAndRejectsAccessToken(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{Username: "reader", Email: "reader@example.com", Password: "correct-password"})
	require.NoError(t, err)

	login, err := service.Login(ctx, LoginInput{Username: "reader", Password: "correct-password"})
	require.NoError(t, err)

	refreshed, err := service.Refresh(ctx, login.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Tokens.AccessToken)
	assert.NotEmpty(t, refreshed.Tokens.RefreshToken)

	// Presenting an access token where a refresh token is expected fails.
	_, err = service.Refresh(ctx, login.Tokens.AccessToken)
	require.Error(t, err)
	assert.Equal(t, 401, apperr.As(err).HTTPStatus)
}

func TestRefresh_FailsWhenAccountDeleted(t *testing.T) {
	service, repo := newTestService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, RegisterInput{Username: "reader", Email: "reader@example.com", Password: "correct-password"})
	require.NoError(t, err)

	login, err := service.Login(ctx, LoginInput{Username: "reader", Password: "correct-password"})
	require.NoError(t, err)

	delete(repo.users, user.ID)

	_, err = service.Refresh(ctx, login.Tokens.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, 401, apperr.As(err).HTTPStatus)
}

func TestAvailabilityProbes(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{Username: "reader", Email: "reader@example.com", Password: "correct-password"})
	require.NoError(t, err)

	free, err := service.UsernameAvailable(ctx, "reader")
	require.NoError(t, err)
	assert.False(t, free)

	free, err = service.UsernameAvailable(ctx, "someone-else")
	require.NoError(t, err)
	assert.True(t, free)

	free, err = service.EmailAvailable(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.False(t, free)
}
