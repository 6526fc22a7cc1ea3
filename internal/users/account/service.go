// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// Package account implements the profile management use cases for
// authenticated users.
//
// Registration and credential issuance live in the sibling auth package;
// this package only deals with an account the caller already owns.
package account

import (
	"context"
	"fmt"

	"github.com/Ukj0ng/bookstore-api/internal/platform/apperr"
	"github.com/Ukj0ng/bookstore-api/internal/platform/sec"
	"github.com/Ukj0ng/bookstore-api/internal/users/auth"
)

// Service implements profile read and update use cases.
type Service struct {
	userRepository auth.UserRepository
}

// NewService constructs a new account [Service].
func NewService(userRepo auth.UserRepository) *Service {
	return &Service{userRepository: userRepo}
}

// GetProfile returns the caller's own account.
func (service *Service) GetProfile(context context.Context, userID int64) (*auth.User, error) {
	return service.userRepository.FindByID(context, userID)
}

// UpdateProfileInput carries the optional profile changes.
//
// Email and NewPassword are independent; either or both may be set. Any
// password change requires the current password as proof of possession.
type UpdateProfileInput struct {
	Email           string
	CurrentPassword string
	NewPassword     string
}

// UpdateProfile applies email and password changes to the caller's account.
//
// # Business Rules
//   - A password change requires the current password to match.
//   - The new email must not belong to another account.
//   - An input with nothing to change is rejected rather than silently
//     succeeding.
func (service *Service) UpdateProfile(context context.Context, userID int64, input UpdateProfileInput) (*auth.User, error) {
	if input.Email == "" && input.NewPassword == "" {
		return nil, apperr.InvalidInput("Nothing to update")
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// ── 1. Validation ─────────────────────────────────────────────────────
	// Every rule is checked before the first write so a rejected change
	// never leaves the account half-updated.

	var newHash string
	if input.NewPassword != "" {
		if !sec.CheckPasswordHash(input.CurrentPassword, user.PasswordHash) {
			return nil, apperr.Unauthorized("Password does not match")
		}

		newHash, err = sec.HashPassword(input.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("account_service_hash_failed: %w", err)
		}
	}

	changeEmail := input.Email != "" && input.Email != user.Email
	if changeEmail {
		registered, err := service.userRepository.ExistsByEmail(context, input.Email)
		if err != nil {
			return nil, err
		}
		if registered {
			return nil, apperr.Conflict("Email is already registered")
		}
	}

	// ── 2. Persistence ────────────────────────────────────────────────────

	if changeEmail {
		if err := service.userRepository.UpdateEmail(context, userID, input.Email); err != nil {
			return nil, err
		}
		user.Email = input.Email
	}

	if newHash != "" {
		if err := service.userRepository.UpdatePassword(context, userID, newHash); err != nil {
			return nil, err
		}
		user.PasswordHash = newHash
	}

	return user, nil
}
