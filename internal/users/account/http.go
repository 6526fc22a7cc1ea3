// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

package account

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Ukj0ng/bookstore-api/internal/platform/request"
	"github.com/Ukj0ng/bookstore-api/internal/platform/respond"
	"github.com/Ukj0ng/bookstore-api/internal/platform/validate"
	"github.com/Ukj0ng/bookstore-api/internal/users/auth"
)

// Handler implements the profile HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns the profile routes. All of them require authentication.
//
// # Endpoints
//   - GET /profile : Returns the caller's account.
//   - PUT /profile : Updates email and/or password.
func (handler *Handler) Routes(router chi.Router) {
	router.Get("/profile", handler.getProfile)
	router.Put("/profile", handler.updateProfile)
}

// getProfile handles GET /api/users/profile requests.
func (handler *Handler) getProfile(writer http.ResponseWriter, httpRequest *http.Request) {
	userID, err := request.RequiredUserID(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	user, err := handler.accountService.GetProfile(httpRequest.Context(), userID)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "", user)
}

// updateProfileRequest carries the optional profile changes.
type updateProfileRequest struct {
	Email           string `json:"email,omitempty"`
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword,omitempty"`
}

// updateProfile handles PUT /api/users/profile requests.
//
// # Returns
//   - Writes HTTP 200 OK with the updated account.
//   - Writes HTTP 401 if the current password does not match.
//   - Writes HTTP 409 if the new email belongs to another account.
func (handler *Handler) updateProfile(writer http.ResponseWriter, httpRequest *http.Request) {
	userID, err := request.RequiredUserID(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	var input updateProfileRequest
	if err := request.DecodeJSON(writer, httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	input.Email = strings.TrimSpace(input.Email)

	v := validate.New()
	if input.Email != "" {
		v.MaxLen("email", input.Email, auth.EmailMaxLength)
		v.Email("email", input.Email)
	}
	if input.NewPassword != "" {
		v.MinLen("newPassword", input.NewPassword, auth.PasswordMinLength)
		v.MaxLen("newPassword", input.NewPassword, auth.PasswordMaxLength)
		v.Require("currentPassword", input.CurrentPassword)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(httpRequest.Context(), userID, UpdateProfileInput{
		Email:           input.Email,
		CurrentPassword: input.CurrentPassword,
		NewPassword:     input.NewPassword,
	})
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, "Profile updated successfully", user)
}
