// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ukj0ng/bookstore-api/internal/platform/sec"
)

func newTestRouter(t *testing.T) (chi.Router, *fakeUserRepository) {
	t.Helper()

	service, repository := newTestService(t)
	router := chi.NewRouter()
	NewHandler(service).PublicRoutes(router)
	return router, repository
}

func postJSON(router chi.Router, path, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRegister_CannotChooseRole verifies that the register payload has no say
over the account's role. A body smuggling "role":"ADMIN" is rejected by the
strict decoder, and a clean registration always comes out as USER.
*/
func TestRegister_CannotChooseRole(t *testing.T) {
	router, repository := newTestRouter(t)

	recorder := postJSON(router, "/register",
		`{"username":"intruder","email":"intruder@example.com","password":"secret1","role":"ADMIN"}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	_, err := repository.FindByUsername(context.Background(), "intruder")
	require.Error(t, err, "no account may be created from a role-bearing payload")

	recorder = postJSON(router, "/register",
		`{"username":"reader","email":"reader@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	stored, err := repository.FindByUsername(context.Background(), "reader")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, stored.Role)
}

/*
TestRegister_AcceptsSevenCharPassword covers the lower password bound:
"secret1" must register successfully.
*/
func TestRegister_AcceptsSevenCharPassword(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := postJSON(router, "/register",
		`{"username":"alice","email":"a@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusCreated, recorder.Code)
}

/*
TestCheckEmail_RejectsMalformedAddress verifies the availability probe
validates the email shape before consulting the store.
*/
func TestCheckEmail_RejectsMalformedAddress(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := postJSON(router, "/check-email", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = postJSON(router, "/check-email", `{"email":"reader@example.com"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
