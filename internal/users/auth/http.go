// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// HTTP delivery layer for the account lifecycle.
//
// # Architecture
//
// Handlers act as the "gatekeepers" to the system. They are responsible for:
//   - JSON Request parsing and strict input validation.
//   - Mapping HTTP contexts to service layer method calls.
//   - Standardizing JSON response formats via the [respond] package.
//
// They contain NO business logic or database queries.
package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Ukj0ng/bookstore-api/internal/platform/apperr"
	"github.com/Ukj0ng/bookstore-api/internal/platform/request"
	"github.com/Ukj0ng/bookstore-api/internal/platform/respond"
	"github.com/Ukj0ng/bookstore-api/internal/platform/validate"
)

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the account lifecycle entry
// points (Signup, Login, Token refresh, Availability probes).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// PublicRoutes returns the routes that must work without a token.
//
// # Endpoints
//   - POST /register       : Creates a new account.
//   - POST /login          : Authenticates and returns a token pair.
//   - POST /refresh        : Exchanges a refresh token for a new pair.
//   - POST /check-username : Reports username availability.
//   - POST /check-email    : Reports email availability.
func (handler *Handler) PublicRoutes(router chi.Router) {
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/check-username", handler.checkUsername)
	router.Post("/check-email", handler.checkEmail)
}

// ProtectedRoutes returns the routes that require an authenticated caller.
//
// # Endpoints
//   - GET  /me     : Returns the caller's own profile.
//   - POST /logout : Acknowledges a client-side logout.
func (handler *Handler) ProtectedRoutes(router chi.Router) {
	router.Get("/me", handler.me)
	router.Post("/logout", handler.logout)
}

// registerRequest represents the JSON payload expected for account creation.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// register handles POST /api/auth/register requests.
//
// # Returns
//   - Writes HTTP 201 Created on success with the User profile.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 409 Conflict if email/username is taken.
func (handler *Handler) register(writer http.ResponseWriter, httpRequest *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input registerRequest
	if err := request.DecodeJSON(writer, httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	// ── 2. Boundary Validation ────────────────────────────────────────────

	v := validate.New()
	v.Require("username", input.Username)
	if input.Username != "" {
		v.MinLen("username", input.Username, UsernameMinLength)
		v.MaxLen("username", input.Username, UsernameMaxLength)
		v.Username("username", input.Username)
	}
	v.Require("email", input.Email)
	if input.Email != "" {
		v.MaxLen("email", input.Email, EmailMaxLength)
		v.Email("email", input.Email)
	}
	v.Require("password", input.Password)
	if input.Password != "" {
		v.MinLen("password", input.Password, PasswordMinLength)
		v.MaxLen("password", input.Password, PasswordMaxLength)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	user, err := handler.authService.Register(httpRequest.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.Created(writer, "Account created successfully", user)
}

// loginRequest represents the JSON payload expected for authentication.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login handles POST /api/auth/login requests.
//
// # Returns
//   - Writes HTTP 200 OK on success with the token pair.
//   - Writes HTTP 401 Unauthorized for bad credentials.
func (handler *Handler) login(writer http.ResponseWriter, httpRequest *http.Request) {
	var input loginRequest
	if err := request.DecodeJSON(writer, httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	v := validate.New()
	v.Require("username", input.Username)
	v.Require("password", input.Password)
	if err := v.Err(); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	result, err := handler.authService.Login(httpRequest.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "Login successful", result.Tokens)
}

// refreshRequest carries the refresh token to exchange.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// refresh handles POST /api/auth/refresh requests.
//
// # Returns
//   - Writes HTTP 200 OK with a brand new token pair.
//   - Writes HTTP 401 Unauthorized if the token is invalid, expired,
//     of the wrong kind, or its account no longer exists.
func (handler *Handler) refresh(writer http.ResponseWriter, httpRequest *http.Request) {
	var input refreshRequest
	if err := request.DecodeJSON(writer, httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	if strings.TrimSpace(input.RefreshToken) == "" {
		respond.Error(writer, httpRequest, apperr.InvalidInput("Refresh token is required"))
		return
	}

	result, err := handler.authService.Refresh(httpRequest.Context(), input.RefreshToken)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "Token refreshed successfully", result.Tokens)
}

// availabilityRequest carries the single identifier being probed.
type availabilityRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// checkUsername handles POST /api/auth/check-username requests.
func (handler *Handler) checkUsername(writer http.ResponseWriter, httpRequest *http.Request) {
	var input availabilityRequest
	if err := request.DecodeJSON(writer, httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		respond.Error(writer, httpRequest, apperr.InvalidInput("Username is required"))
		return
	}

	available, err := handler.authService.UsernameAvailable(httpRequest.Context(), username)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "", map[string]bool{"available": available})
}

// checkEmail handles POST /api/auth/check-email requests.
func (handler *Handler) checkEmail(writer http.ResponseWriter, httpRequest *http.Request) {
	var input availabilityRequest
	if err := request.DecodeJSON(writer, httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		respond.Error(writer, httpRequest, apperr.InvalidInput("Email is required"))
		return
	}

	v := validate.New()
	v.Email("email", email)
	if err := v.Err(); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	available, err := handler.authService.EmailAvailable(httpRequest.Context(), email)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "", map[string]bool{"available": available})
}

// me handles GET /api/auth/me requests for the authenticated caller.
func (handler *Handler) me(writer http.ResponseWriter, httpRequest *http.Request) {
	userID, err := request.RequiredUserID(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	user, err := handler.authService.Profile(httpRequest.Context(), userID)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "", user)
}

// logout handles POST /api/auth/logout requests.
//
// Tokens are stateless and there is no server-side session to destroy; the
// endpoint exists so clients have a uniform place to signal logout and drop
// their stored tokens.
func (handler *Handler) logout(writer http.ResponseWriter, httpRequest *http.Request) {
	if _, err := request.RequiredClaims(httpRequest); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "Logged out successfully", nil)
}
