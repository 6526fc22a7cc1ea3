// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ukj0ng/bookstore-api/internal/platform/middleware"
	"github.com/Ukj0ng/bookstore-api/internal/platform/sec"
)

// fakeVerifier accepts exactly one token string and returns canned claims.
type fakeVerifier struct {
	token  string
	claims *sec.AuthClaims
}

func (v *fakeVerifier) VerifyAccess(tokenStr string) (*sec.AuthClaims, error) {
	if tokenStr == v.token {
		return v.claims, nil
	}
	return nil, sec.ErrInvalidToken
}

// fakeAccounts reports liveness from a fixed set of IDs.
type fakeAccounts struct {
	alive map[int64]bool
	err   error
}

func (f *fakeAccounts) AccountExists(_ context.Context, userID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.alive[userID], nil
}

func userClaims(id int64, role sec.UserRole) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: id, Username: "bookworm", Role: role, Kind: sec.KindAccess}
}

// echoUser terminates the chain and records the claims it observed.
func echoUser(observed **sec.AuthClaims) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		*observed = middleware.GetUser(request.Context())
		writer.WriteHeader(http.StatusOK)
	}
}

func serve(t *testing.T, handler http.Handler, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestAuthenticate_Anonymous verifies that missing or non-Bearer credentials pass
through as anonymous instead of being rejected.
*/
func TestAuthenticate_Anonymous(t *testing.T) {
	verifier := &fakeVerifier{token: "good", claims: userClaims(1, sec.RoleUser)}

	var observed *sec.AuthClaims
	handler := middleware.Authenticate(verifier)(echoUser(&observed))

	// 1. No header at all.
	recorder := serve(t, handler, "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, observed)

	// 2. A non-Bearer scheme is also anonymous.
	recorder = serve(t, handler, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, observed)
}

/*
TestAuthenticate_ValidToken verifies claims injection for a verified token.
*/
func TestAuthenticate_ValidToken(t *testing.T) {
	verifier := &fakeVerifier{token: "good", claims: userClaims(42, sec.RoleAdmin)}

	var observed *sec.AuthClaims
	handler := middleware.Authenticate(verifier)(echoUser(&observed))

	recorder := serve(t, handler, "Bearer good")
	assert.Equal(t, http.StatusOK, recorder.Code)

	require.NotNil(t, observed)
	assert.Equal(t, int64(42), observed.UserID)
	assert.Equal(t, sec.RoleAdmin, observed.Role)
}

/*
TestAuthenticate_InvalidToken verifies that a present-but-bad credential is a
hard 401, not anonymous.
*/
func TestAuthenticate_InvalidToken(t *testing.T) {
	verifier := &fakeVerifier{token: "good", claims: userClaims(1, sec.RoleUser)}

	var observed *sec.AuthClaims
	handler := middleware.Authenticate(verifier)(echoUser(&observed))

	recorder := serve(t, handler, "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Nil(t, observed)
	assert.Contains(t, recorder.Body.String(), "Invalid or expired token")
}

/*
TestRequireAuth verifies the 401 gate for anonymous callers.
*/
func TestRequireAuth(t *testing.T) {
	verifier := &fakeVerifier{token: "good", claims: userClaims(1, sec.RoleUser)}

	var observed *sec.AuthClaims
	chain := middleware.Authenticate(verifier)(middleware.RequireAuth(echoUser(&observed)))

	// 1. Anonymous is blocked.
	recorder := serve(t, chain, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Authentication required")

	// 2. Authenticated passes.
	recorder = serve(t, chain, "Bearer good")
	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, observed)
}

/*
TestRequireRole verifies exact-match role gating: 401 for anonymous callers,
403 for the wrong role. ADMIN is not a superset of USER.
*/
func TestRequireRole(t *testing.T) {
	t.Run("anonymous gets 401", func(t *testing.T) {
		var observed *sec.AuthClaims
		handler := middleware.RequireRole(sec.RoleAdmin)(echoUser(&observed))

		recorder := serve(t, handler, "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("wrong role gets 403", func(t *testing.T) {
		verifier := &fakeVerifier{token: "good", claims: userClaims(1, sec.RoleUser)}

		var observed *sec.AuthClaims
		chain := middleware.Authenticate(verifier)(middleware.RequireAdmin()(echoUser(&observed)))

		recorder := serve(t, chain, "Bearer good")
		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Insufficient permissions")
	})

	t.Run("admin is not a superset of user", func(t *testing.T) {
		verifier := &fakeVerifier{token: "good", claims: userClaims(1, sec.RoleAdmin)}

		var observed *sec.AuthClaims
		chain := middleware.Authenticate(verifier)(middleware.RequireRole(sec.RoleUser)(echoUser(&observed)))

		recorder := serve(t, chain, "Bearer good")
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("matching role passes", func(t *testing.T) {
		verifier := &fakeVerifier{token: "good", claims: userClaims(1, sec.RoleAdmin)}

		var observed *sec.AuthClaims
		chain := middleware.Authenticate(verifier)(middleware.RequireAdmin()(echoUser(&observed)))

		recorder := serve(t, chain, "Bearer good")
		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, observed)
		assert.Equal(t, sec.RoleAdmin, observed.Role)
	})
}

/*
TestRequireLiveAccount verifies the storage-backed liveness recheck: a valid
token whose account was deleted gets 403, not 401.
*/
func TestRequireLiveAccount(t *testing.T) {
	verifier := &fakeVerifier{token: "good", claims: userClaims(42, sec.RoleAdmin)}

	t.Run("live account passes", func(t *testing.T) {
		accounts := &fakeAccounts{alive: map[int64]bool{42: true}}

		var observed *sec.AuthClaims
		chain := middleware.Authenticate(verifier)(middleware.RequireLiveAccount(accounts)(echoUser(&observed)))

		recorder := serve(t, chain, "Bearer good")
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("deleted account gets 403", func(t *testing.T) {
		accounts := &fakeAccounts{alive: map[int64]bool{}}

		var observed *sec.AuthClaims
		chain := middleware.Authenticate(verifier)(middleware.RequireLiveAccount(accounts)(echoUser(&observed)))

		recorder := serve(t, chain, "Bearer good")
		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Account is no longer active")
	})

	t.Run("anonymous gets 401", func(t *testing.T) {
		accounts := &fakeAccounts{alive: map[int64]bool{42: true}}

		var observed *sec.AuthClaims
		handler := middleware.RequireLiveAccount(accounts)(echoUser(&observed))

		recorder := serve(t, handler, "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("lookup error surfaces as 500", func(t *testing.T) {
		accounts := &fakeAccounts{err: errors.New("connection reset")}

		var observed *sec.AuthClaims
		chain := middleware.Authenticate(verifier)(middleware.RequireLiveAccount(accounts)(echoUser(&observed)))

		recorder := serve(t, chain, "Bearer good")
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}
