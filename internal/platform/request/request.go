// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// Package request provides helpers for decoding and interrogating incoming
// HTTP requests: JSON body decoding, URL parameter parsing, and access to the
// authenticated identity stored on the request context.
package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Ukj0ng/bookstore-api/internal/platform/apperr"
	"github.com/Ukj0ng/bookstore-api/internal/platform/ctxutil"
	"github.com/Ukj0ng/bookstore-api/internal/platform/sec"
)

// maxBodyBytes caps request bodies at 1 MiB. No bookstore payload
// legitimately exceeds this.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads and decodes the request body into dst.

It enforces a size cap, rejects unknown fields so typos surface as errors
instead of silently-ignored input, and rejects trailing garbage after the
JSON document.

Parameters:
  - w: The response writer, needed by http.MaxBytesReader.
  - r: The incoming request.
  - dst: Pointer to the target struct.

Returns:
  - error: An *apperr.AppError describing the decode failure, or nil.
*/
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperr.InvalidInput("Request body must not be empty")
		case errors.As(err, &maxBytesError):
			return apperr.InvalidInput("Request body is too large")
		default:
			return apperr.InvalidInput("Request body contains invalid JSON")
		}
	}

	// A second Decode call detects trailing content after the first document.
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperr.InvalidInput("Request body must contain a single JSON object")
	}

	return nil
}

// ID extracts the named chi URL parameter as a positive int64.
//
// Identifiers in this API are numeric database keys, so anything that is not
// a positive integer is rejected as invalid input.
func ID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.InvalidInput("Invalid " + name)
	}
	return id, nil
}

// Claims returns the authenticated token claims from the request context,
// or nil when the request is anonymous.
func Claims(r *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(r.Context())
}

// RequiredClaims returns the authenticated token claims, or a 401 error when
// the request carries no verified identity.
func RequiredClaims(r *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(r.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

// RequiredUserID returns the authenticated user's numeric ID, or a 401 error.
func RequiredUserID(r *http.Request) (int64, error) {
	claims, err := RequiredClaims(r)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
