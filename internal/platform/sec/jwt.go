// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer and the authentication middleware.
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind distinguishes short-lived access tokens from long-lived refresh tokens.
type TokenKind string

const (
	// KindAccess authorizes regular API calls.
	KindAccess TokenKind = "ACCESS"

	// KindRefresh is only accepted by the token refresh endpoint.
	KindRefresh TokenKind = "REFRESH"
)

var (
	// ErrInvalidToken is returned for any token that fails signature,
	// structural, algorithm, or kind verification.
	ErrInvalidToken = errors.New("sec: invalid token")

	// ErrExpiredToken is returned for structurally valid tokens whose
	// expiry has passed. It matches [ErrInvalidToken] under [errors.Is]
	// so callers can treat both uniformly.
	ErrExpiredToken = fmt.Errorf("%w: expired", ErrInvalidToken)
)

// AuthClaims represents the payload embedded inside a signed token.
//
// # Why custom claims?
//
// By embedding the UserID, Username, and Role directly inside the JWT,
// the authentication middleware can reconstruct the active user context
// WITHOUT querying the database on every single API request. This provides
// massive read-scalability. The compensating identity-liveness recheck for
// mutation endpoints lives in the middleware layer, not here.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   int64     `json:"uid"`
	Username string    `json:"unm"`
	Role     UserRole  `json:"rol"`
	Kind     TokenKind `json:"knd"`
}

// TokenService issues and verifies HMAC-signed (HS256) JWT tokens.
//
// # Concurrency
//
// The signing secret and validity durations are set once at construction
// and never mutated, so a single instance is safe for concurrent use.
type TokenService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService creates a new TokenService signing with the shared secret.
func NewTokenService(secret, issuer string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("sec: signing secret must not be empty")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("sec: token validity durations must be positive")
	}

	return &TokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// AccessTokenTTL returns the configured access token validity window.
func (service *TokenService) AccessTokenTTL() time.Duration { return service.accessTTL }

// IssueAccessToken creates a short-lived signed token authorizing API calls.
func (service *TokenService) IssueAccessToken(userID int64, username string, role UserRole) (string, error) {
	return service.issue(userID, username, role, KindAccess, service.accessTTL)
}

// IssueRefreshToken creates a long-lived signed token usable only to mint a new pair.
func (service *TokenService) IssueRefreshToken(userID int64, username string, role UserRole) (string, error) {
	return service.issue(userID, username, role, KindRefresh, service.refreshTTL)
}

func (service *TokenService) issue(userID int64, username string, role UserRole, kind TokenKind, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:   userID,
		Username: username,
		Role:     role,
		Kind:     kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature, structure, and expiry of a token string.
//
// Every failure mode resolves to a typed error matching [ErrInvalidToken];
// expired tokens additionally match [ErrExpiredToken]. Verification never
// silently defaults.
func (service *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrInvalidToken, token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// VerifyKind runs [Verify] and additionally enforces the token kind claim.
//
// An ACCESS token must never pass where REFRESH is required and vice versa.
func (service *TokenService) VerifyKind(tokenString string, kind TokenKind) (*AuthClaims, error) {
	claims, err := service.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Kind != kind {
		return nil, fmt.Errorf("%w: token kind %q where %q is required", ErrInvalidToken, claims.Kind, kind)
	}

	return claims, nil
}

// VerifyAccess is shorthand for [VerifyKind] with [KindAccess]. It satisfies
// the middleware's TokenVerifier contract.
func (service *TokenService) VerifyAccess(tokenString string) (*AuthClaims, error) {
	return service.VerifyKind(tokenString, KindAccess)
}

// ExtractClaim is a best-effort accessor for a single raw claim value.
//
// It decodes the payload WITHOUT verifying the signature and returns nil for
// missing or unparseable claims instead of an error. It exists for optional
// diagnostic reads (e.g. logging the subject of a rejected token); callers
// requiring claims for authorization decisions must use [Verify].
func ExtractClaim(tokenString, name string) any {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}

	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil
	}

	value, found := claims[name]
	if !found {
		return nil
	}
	return value
}

// ResolveBearer strips the "Bearer " scheme from an Authorization header value.
//
// It returns the empty string when the header is absent or carries a
// different scheme, which the authentication gate treats as anonymous.
func ResolveBearer(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
