// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// Package auth implements the account registration and authentication
// lifecycle of the bookstore.
//
// # Architecture
//
// Entities in this package represent the "Truth" of the user domain.
// They have no dependencies on outer layers (like databases, APIs, or libraries).
// This makes the core logic highly testable and resilient to technology changes.
package auth

import (
	"time"

	"github.com/Ukj0ng/bookstore-api/internal/platform/sec"
)

// Field length rules enforced at registration time.
const (
	UsernameMinLength = 3
	UsernameMaxLength = 50
	PasswordMinLength = 6
	PasswordMaxLength = 100
	EmailMaxLength    = 255
)

// User represents a registered account of the bookstore.
//
// # Rules
//   - Username is unique and restricted to letters, digits and underscores.
//   - Email is unique and validated.
//   - PasswordHash is generated via Bcrypt exclusively via the auth Service.
type User struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// TokenPair is the credential bundle returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"` // Access token lifetime in seconds.
}
