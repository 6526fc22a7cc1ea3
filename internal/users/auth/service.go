// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// Use-case layer for the account lifecycle.
//
// # Architecture
//
// Services in this package orchestrate domain entities and interact with
// repositories through interfaces. They are technology-agnostic and do not
// know about HTTP or SQL.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/Ukj0ng/bookstore-api/internal/platform/apperr"
	"github.com/Ukj0ng/bookstore-api/internal/platform/sec"
)

// TokenProvider defines the contract for issuing and checking security tokens.
//
// Satisfied by [sec.TokenService]; declared here so the service can be unit
// tested with a fake issuer.
type TokenProvider interface {
	IssueAccessToken(userID int64, username string, role sec.UserRole) (string, error)
	IssueRefreshToken(userID int64, username string, role sec.UserRole) (string, error)
	VerifyKind(tokenString string, kind sec.TokenKind) (*sec.AuthClaims, error)
	AccessTokenTTL() time.Duration
}

// Service implements account registration and authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
	}
}

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register validates, hashes, and persists a brand new user account.
//
// # Parameters
//   - context: Context for the database operation.
//   - input: The user-provided registration details. Field-shape validation
//     has already happened at the HTTP boundary.
//
// # Returns
//   - A pointer to the newly created [*User].
//   - Returns [apperr.Conflict] if email or username already exists.
//
// # Business Rules
//   - Usernames must be unique.
//   - Emails must be unique.
//   - Every new account is created with the USER role. ADMIN is assigned
//     directly in the store, never through this endpoint.
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	// ── 1. Uniqueness Checks ──────────────────────────────────────────────

	taken, err := service.userRepository.ExistsByUsername(context, input.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_username_check_failed: %w", err)
	}
	if taken {
		return nil, apperr.Conflict("Username is already taken")
	}

	registered, err := service.userRepository.ExistsByEmail(context, input.Email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_email_check_failed: %w", err)
	}
	if registered {
		return nil, apperr.Conflict("Email is already registered")
	}

	// ── 2. Security ───────────────────────────────────────────────────────

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 3. Entity Construction ────────────────────────────────────────────

	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	// The unique indexes are the final arbiter; a concurrent signup that
	// slipped past the checks above still surfaces as a Conflict here.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult represents a successfully authenticated session.
type LoginResult struct {
	Tokens TokenPair
	User   *User
}

// Login validates user credentials and issues a token pair.
//
// # Parameters
//   - context: Context for the database operation.
//   - input: Contains Username and plain-text Password.
//
// # Returns
//   - A pointer to [LoginResult] containing both tokens and the profile.
//   - Returns [apperr.Unauthorized] if credentials do not match.
//
// # Flow
//  1. Lookup user by username.
//  2. Verify password hash using Bcrypt.
//  3. Issue an access/refresh token pair.
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	// ── 1. Fetch User Profile ─────────────────────────────────────────────

	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		return nil, apperr.Unauthorized("User not found")
	}

	// ── 2. Security Verification ──────────────────────────────────────────

	// Bcrypt compares in constant time, which blunts timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Password does not match")
	}

	// ── 3. Token Issuance ─────────────────────────────────────────────────

	tokens, err := service.issuePair(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Tokens: tokens, User: user}, nil
}

// Refresh exchanges a valid refresh token for a brand new token pair.
//
// # Flow
//  1. Verify the presented token cryptographically and check its kind.
//     An access token presented here is rejected even if otherwise valid.
//  2. Re-check that the account behind the token still exists; tokens
//     outlive accounts otherwise.
//  3. Issue a fresh pair reflecting the account's current role.
func (service *Service) Refresh(context context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := service.tokenProvider.VerifyKind(refreshToken, sec.KindRefresh)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Account is no longer active")
	}

	tokens, err := service.issuePair(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Tokens: tokens, User: user}, nil
}

// Profile returns the account behind an authenticated request.
func (service *Service) Profile(context context.Context, userID int64) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// UsernameAvailable reports whether a username is free to register.
func (service *Service) UsernameAvailable(context context.Context, username string) (bool, error) {
	taken, err := service.userRepository.ExistsByUsername(context, username)
	if err != nil {
		return false, fmt.Errorf("auth_service_username_check_failed: %w", err)
	}
	return !taken, nil
}

// EmailAvailable reports whether an email is free to register.
func (service *Service) EmailAvailable(context context.Context, email string) (bool, error) {
	registered, err := service.userRepository.ExistsByEmail(context, email)
	if err != nil {
		return false, fmt.Errorf("auth_service_email_check_failed: %w", err)
	}
	return !registered, nil
}

// AccountExists implements the middleware's account liveness probe.
func (service *Service) AccountExists(context context.Context, userID int64) (bool, error) {
	exists, err := service.userRepository.ExistsByID(context, userID)
	if err != nil {
		return false, fmt.Errorf("auth_service_liveness_check_failed: %w", err)
	}
	return exists, nil
}

// issuePair builds the access/refresh token bundle for an account.
func (service *Service) issuePair(user *User) (TokenPair, error) {
	accessToken, err := service.tokenProvider.IssueAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokenProvider.IssueRefreshToken(user.ID, user.Username, user.Role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(service.tokenProvider.AccessTokenTTL().Seconds()),
	}, nil
}
