// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ukj0ng/bookstore-api/internal/platform/sec"
)

const testSecret = "unit-test-signing-secret-32-bytes!!"

func newTestTokenService(t *testing.T, accessTTL, refreshTTL time.Duration) *sec.TokenService {
	t.Helper()

	service, err := sec.NewTokenService(testSecret, "bookstore-api", accessTTL, refreshTTL)
	require.NoError(t, err)
	return service
}

/*
TestTokenService_New verifies constructor validation of secret and durations.
*/
func TestTokenService_New(t *testing.T) {
	_, err := sec.NewTokenService("", "bookstore-api", time.Hour, time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenService("   ", "bookstore-api", time.Hour, time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenService(testSecret, "bookstore-api", 0, time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenService(testSecret, "bookstore-api", time.Hour, -time.Hour)
	assert.Error(t, err)
}

/*
TestTokenService_IssueAndVerify verifies that a freshly issued access token
round-trips through verification with its claims intact.
*/
func TestTokenService_IssueAndVerify(t *testing.T) {
	service := newTestTokenService(t, time.Hour, 7*24*time.Hour)

	signed, err := service.IssueAccessToken(42, "bookworm", sec.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := service.VerifyAccess(signed)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "bookworm", claims.Username)
	assert.Equal(t, sec.RoleUser, claims.Role)
	assert.Equal(t, sec.KindAccess, claims.Kind)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "bookstore-api", claims.Issuer)
}

/*
TestTokenService_Expired verifies that an expired token is rejected with the
typed expiry error.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTestTokenService(t, time.Nanosecond, time.Hour)

	signed, err := service.IssueAccessToken(1, "bookworm", sec.RoleUser)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = service.VerifyAccess(signed)
	require.Error(t, err)
	assert.ErrorIs(t, err, sec.ErrExpiredToken)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestTokenService_KindMismatch verifies that access and refresh tokens are
never interchangeable.
*/
func TestTokenService_KindMismatch(t *testing.T) {
	service := newTestTokenService(t, time.Hour, 7*24*time.Hour)

	access, err := service.IssueAccessToken(7, "bookworm", sec.RoleAdmin)
	require.NoError(t, err)
	refresh, err := service.IssueRefreshToken(7, "bookworm", sec.RoleAdmin)
	require.NoError(t, err)

	// 1. Refresh token rejected where access is required.
	_, err = service.VerifyAccess(refresh)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)

	// 2. Access token rejected where refresh is required.
	_, err = service.VerifyKind(access, sec.KindRefresh)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)

	// 3. Matching kinds both pass.
	_, err = service.VerifyKind(access, sec.KindAccess)
	assert.NoError(t, err)
	_, err = service.VerifyKind(refresh, sec.KindRefresh)
	assert.NoError(t, err)
}

/*
TestTokenService_WrongSecret verifies that a token signed by a different key
never verifies.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	service := newTestTokenService(t, time.Hour, time.Hour)

	other, err := sec.NewTokenService("a-completely-different-secret-key!!!", "bookstore-api", time.Hour, time.Hour)
	require.NoError(t, err)

	signed, err := other.IssueAccessToken(9, "intruder", sec.RoleUser)
	require.NoError(t, err)

	_, err = service.VerifyAccess(signed)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestTokenService_Garbage verifies structural rejection of malformed input.
*/
func TestTokenService_Garbage(t *testing.T) {
	service := newTestTokenService(t, time.Hour, time.Hour)

	for _, input := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		_, err := service.VerifyAccess(input)
		assert.ErrorIs(t, err, sec.ErrInvalidToken, "input %q", input)
	}
}

/*
TestResolveBearer verifies Authorization header scheme handling.
*/
func TestResolveBearer(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", sec.ResolveBearer("Bearer abc.def.ghi"))
	assert.Equal(t, "abc.def.ghi", sec.ResolveBearer("bearer abc.def.ghi"))
	assert.Equal(t, "abc", sec.ResolveBearer("Bearer   abc  "))

	// Anything that is not the Bearer scheme resolves to anonymous.
	assert.Empty(t, sec.ResolveBearer(""))
	assert.Empty(t, sec.ResolveBearer("Basic dXNlcjpwYXNz"))
	assert.Empty(t, sec.ResolveBearer("Bearer"))
}

/*
TestExtractClaim verifies the unverified diagnostic claim reader.
*/
func TestExtractClaim(t *testing.T) {
	service := newTestTokenService(t, time.Hour, time.Hour)

	signed, err := service.IssueAccessToken(15, "bookworm", sec.RoleUser)
	require.NoError(t, err)

	assert.Equal(t, "bookworm", sec.ExtractClaim(signed, "unm"))
	assert.Equal(t, "15", sec.ExtractClaim(signed, "sub"))
	assert.Nil(t, sec.ExtractClaim(signed, "missing"))
	assert.Nil(t, sec.ExtractClaim("garbage", "sub"))
}
